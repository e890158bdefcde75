package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
)

// Env var names used as config overrides. Logging variables are shared with
// the log package.
const (
	EnvAnimationMs = "PACKVIEW_ANIMATION_MS"
	EnvInitialZoom = "PACKVIEW_INITIAL_ZOOM"
	EnvTheme       = "PACKVIEW_THEME"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.packview/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".packview")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// SaveAppConfig persists an AppConfig to the given path as YAML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	applog.WithComponent("config").Debug("config saved", "path", path)
	return nil
}

// LoadAppConfig reads an AppConfig from the given path, fills missing fields
// from the defaults and applies environment overrides. If the file does not
// exist, it returns the defaults (with overrides) and no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	cfg := model.DefaultAppConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg model.AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case os.IsNotExist(err):
		applog.WithComponent("config").Debug("no config file, using defaults", "path", path)
	default:
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnvOverrides(&cfg)
	cfg.Normalize()
	return cfg, nil
}

func mergeInto(dst, src *model.AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.AnimationMs != 0 {
		dst.AnimationMs = src.AnimationMs
	}
	if src.InitialZoom != 0 {
		dst.InitialZoom = src.InitialZoom
	}
	dst.Autofill = src.Autofill
	if src.RecentFiles != nil {
		dst.RecentFiles = src.RecentFiles
	}
	if strings.TrimSpace(src.Theme) != "" {
		dst.Theme = strings.ToLower(strings.TrimSpace(src.Theme))
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *model.AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAnimationMs)); v != "" {
		if ms, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AnimationMs = ms
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvInitialZoom)); v != "" {
		if z, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.InitialZoom = z
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// LogOptions converts the logging block of a config into log package options.
func LogOptions(cfg model.AppConfig) applog.Options {
	return applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
}
