package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PackView/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := model.DefaultAppConfig()
	cfg.AnimationMs = 150
	cfg.InitialZoom = 2
	cfg.Autofill = true
	cfg.Theme = "dark"
	cfg.RecentFiles = []string{"/tmp/a.json", "/tmp/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.AnimationMs != 150 {
		t.Errorf("expected AnimationMs=150, got %f", loaded.AnimationMs)
	}
	if loaded.InitialZoom != 2 {
		t.Errorf("expected InitialZoom=2, got %f", loaded.InitialZoom)
	}
	if !loaded.Autofill {
		t.Error("expected Autofill=true")
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.yaml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.AnimationMs != model.DefaultAnimationMs {
		t.Errorf("expected default animation speed, got %f", cfg.AnimationMs)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentFiles == nil {
		t.Error("expected non-nil RecentFiles")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: Light\nlogging:\n  level: DEBUG\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level=debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected default format, got %s", cfg.Logging.Format)
	}
	if cfg.AnimationMs != model.DefaultAnimationMs || cfg.InitialZoom != 1 {
		t.Errorf("expected viewer defaults, got %f / %f", cfg.AnimationMs, cfg.InitialZoom)
	}
}

func TestLoadAppConfigClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("animation_ms: 2\ninitial_zoom: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.AnimationMs != model.MinAnimationMs {
		t.Errorf("expected animation clamped to %f, got %f", model.MinAnimationMs, cfg.AnimationMs)
	}
	if cfg.InitialZoom != model.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", model.MaxZoom, cfg.InitialZoom)
	}
}

func TestLoadAppConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvAnimationMs, "250")
	t.Setenv(EnvTheme, "DARK")
	t.Setenv("PACKVIEW_LOG_SOURCE", "yes")

	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.AnimationMs != 250 {
		t.Errorf("expected env animation 250, got %f", cfg.AnimationMs)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected env theme, got %s", cfg.Theme)
	}
	if !cfg.Logging.Source {
		t.Error("expected env log source")
	}

	opts := LogOptions(cfg)
	if !opts.AddSource || opts.Level != "info" {
		t.Errorf("unexpected log options %+v", opts)
	}
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("animation_ms: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.yaml")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("expected config.yaml, got %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".packview" {
		t.Errorf("expected .packview directory, got %s", path)
	}
}
