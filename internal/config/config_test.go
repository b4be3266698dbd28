package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if !cfg.Cloth.Enabled {
		t.Error("expected cloth simulation to be enabled by default")
	}
	if cfg.Cloth.WindSpeed != 2.0 {
		t.Errorf("expected wind speed 2.0, got %f", cfg.Cloth.WindSpeed)
	}
	if cfg.Cloth.WindDirection != 0 {
		t.Errorf("expected wind direction 0, got %f", cfg.Cloth.WindDirection)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Cloth.WindSpeed = -5
	cfg.Cloth.WindDirection = 725
	cfg.Normalize()

	if cfg.Cloth.WindSpeed != 0 {
		t.Errorf("negative wind speed should clamp to 0, got %f", cfg.Cloth.WindSpeed)
	}
	if cfg.Cloth.WindDirection != 5 {
		t.Errorf("wind direction 725 should wrap to 5, got %f", cfg.Cloth.WindDirection)
	}

	cfg.Cloth.WindDirection = -90
	cfg.Normalize()
	if cfg.Cloth.WindDirection != 270 {
		t.Errorf("wind direction -90 should wrap to 270, got %f", cfg.Cloth.WindDirection)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := []byte(`
graphics:
  width: 1920
  height: 1080
cloth:
  enabled: false
  wind_speed: 7.5
  wind_direction: 180
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Cloth.Enabled {
		t.Error("expected cloth disabled from file")
	}
	if cfg.Cloth.WindSpeed != 7.5 {
		t.Errorf("expected wind speed 7.5, got %f", cfg.Cloth.WindSpeed)
	}
	if cfg.Cloth.WindDirection != 180 {
		t.Errorf("expected wind direction 180, got %f", cfg.Cloth.WindDirection)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	// Fields absent from the file keep their defaults.
	if !cfg.Graphics.VSync {
		t.Error("vsync should keep its default when absent from file")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Cloth.WindSpeed = 3.25
	cfg.Cloth.WindDirection = 45
	cfg.Graphics.Width = 800

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if loaded.Cloth.WindSpeed != 3.25 {
		t.Errorf("expected wind speed 3.25 after round trip, got %f", loaded.Cloth.WindSpeed)
	}
	if loaded.Cloth.WindDirection != 45 {
		t.Errorf("expected wind direction 45 after round trip, got %f", loaded.Cloth.WindDirection)
	}
	if loaded.Graphics.Width != 800 {
		t.Errorf("expected width 800 after round trip, got %d", loaded.Graphics.Width)
	}
}
