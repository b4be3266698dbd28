// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Cloth    ClothConfig    `yaml:"cloth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// ClothConfig holds cloth simulation settings. WindSpeed and WindDirection
// are read by the solver every frame, so edits through the UI take effect
// immediately.
type ClothConfig struct {
	Enabled bool `yaml:"enabled"`
	// WindSpeed is the base wind strength, non-negative.
	WindSpeed float32 `yaml:"wind_speed"`
	// WindDirection is the horizontal wind heading in degrees, 0-360.
	WindDirection float32 `yaml:"wind_direction"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Cloth: ClothConfig{
			Enabled:       true,
			WindSpeed:     2.0,
			WindDirection: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Normalize clamps cloth settings into their valid ranges.
func (c *Config) Normalize() {
	if c.Cloth.WindSpeed < 0 {
		c.Cloth.WindSpeed = 0
	}
	for c.Cloth.WindDirection < 0 {
		c.Cloth.WindDirection += 360
	}
	for c.Cloth.WindDirection >= 360 {
		c.Cloth.WindDirection -= 360
	}
}
