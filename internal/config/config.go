// Package config handles generator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/params"
)

// Config holds all generator settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Body       params.Ranges    `yaml:"body"`
	Assets     AssetsConfig     `yaml:"assets"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig holds the seed, mesh resolution and colony layout.
type GenerationConfig struct {
	Seed       int64           `yaml:"seed"`
	Resolution mesh.Resolution `yaml:"resolution"`
	Count      int             `yaml:"count"`
	Spacing    float32         `yaml:"spacing"`
	Workers    int             `yaml:"workers"`
}

// AssetsConfig points at the claw and eye template manifest.
type AssetsConfig struct {
	Manifest string `yaml:"manifest"` // Empty uses the built-in templates
}

// OutputConfig selects what the generator writes and where.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	OBJ         bool   `yaml:"obj"`
	Manifest    bool   `yaml:"manifest"`
	Preview     bool   `yaml:"preview"`
	PreviewSize int    `yaml:"preview_size"`
	Supersample int    `yaml:"supersample"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Seed:       0,
			Resolution: mesh.DefaultResolution,
			Count:      5,
			Spacing:    7,
			Workers:    1,
		},
		Body: params.DefaultRanges(),
		Output: OutputConfig{
			Dir:         "out",
			OBJ:         true,
			Manifest:    true,
			Preview:     true,
			PreviewSize: 512,
			Supersample: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate clamps the mesh resolution into the supported range and rejects
// settings generation cannot work with.
func (c *Config) Validate() error {
	c.Generation.Resolution = c.Generation.Resolution.Clamp()

	var errs []error
	if c.Generation.Count < 0 {
		errs = append(errs, fmt.Errorf("generation.count must not be negative, got %d", c.Generation.Count))
	}
	if c.Generation.Workers < 0 {
		errs = append(errs, fmt.Errorf("generation.workers must not be negative, got %d", c.Generation.Workers))
	}
	if err := c.Body.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("body: %w", err))
	}
	if c.Output.Preview {
		if c.Output.PreviewSize <= 0 {
			errs = append(errs, fmt.Errorf("output.preview_size must be positive, got %d", c.Output.PreviewSize))
		}
		if c.Output.Supersample < 1 {
			c.Output.Supersample = 1
		}
	}
	return errors.Join(errs...)
}
