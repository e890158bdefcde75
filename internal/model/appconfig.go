package model

// Viewer defaults shared by the engine and the config layer.
const (
	DefaultAnimationMs = 80.0
	MinAnimationMs     = 10.0
	MaxAnimationMs     = 500.0
	MinZoom            = 0.1
	MaxZoom            = 10.0
	MaxRecentFiles     = 10
)

// LoggingConfig mirrors the log package options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig holds application-wide preferences and viewer defaults.
type AppConfig struct {
	ConfigVersion int `yaml:"config_version"`

	// Viewer defaults applied when a layout is loaded
	AnimationMs float64 `yaml:"animation_ms"`
	InitialZoom float64 `yaml:"initial_zoom"`
	Autofill    bool    `yaml:"autofill"` // initial state of the autofill checkbox

	// Application preferences
	RecentFiles []string      `yaml:"recent_files"`
	Theme       string        `yaml:"theme"` // "light", "dark", "system"
	Logging     LoggingConfig `yaml:"logging"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		AnimationMs:   DefaultAnimationMs,
		InitialZoom:   1.0,
		RecentFiles:   []string{},
		Theme:         "system",
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Normalize clamps out-of-range values back into their allowed ranges.
func (c *AppConfig) Normalize() {
	c.AnimationMs = ClampAnimationMs(c.AnimationMs)
	c.InitialZoom = ClampZoom(c.InitialZoom)
	if c.RecentFiles == nil {
		c.RecentFiles = []string{}
	}
	if len(c.RecentFiles) > MaxRecentFiles {
		c.RecentFiles = c.RecentFiles[:MaxRecentFiles]
	}
	if c.Theme == "" {
		c.Theme = "system"
	}
}

// AddRecentFile moves path to the front of the recent list.
func (c *AppConfig) AddRecentFile(path string) {
	recent := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentFiles {
		recent = recent[:MaxRecentFiles]
	}
	c.RecentFiles = recent
}

// ClampZoom limits a zoom factor to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	if z != z || z < MinZoom { // NaN falls to the minimum
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ClampAnimationMs limits a reveal tick period to [MinAnimationMs, MaxAnimationMs].
func ClampAnimationMs(ms float64) float64 {
	if ms != ms || ms < MinAnimationMs {
		return MinAnimationMs
	}
	if ms > MaxAnimationMs {
		return MaxAnimationMs
	}
	return ms
}
