// Package config loads treeport settings from .treeport.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".treeport.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidConfig is returned for values outside their allowed set.
var ErrInvalidConfig = errors.New("invalid config")

// Palette overrides UI colors. Empty fields keep the defaults.
type Palette struct {
	Success string `yaml:"success,omitempty"`
	Failure string `yaml:"failure,omitempty"`
	Warning string `yaml:"warning,omitempty"`
	Info    string `yaml:"info,omitempty"`
}

// Config represents the application's settings.
type Config struct {
	Format         string  `yaml:"format"`
	Parallel       int     `yaml:"parallel"`
	Reports        string  `yaml:"reports"`
	Save           bool    `yaml:"save"`
	Summary        bool    `yaml:"summary"`
	LevelPrefix    bool    `yaml:"level_prefix"`
	Color          string  `yaml:"color"`
	FailOnError    bool    `yaml:"fail_on_error"`
	PhrasedRunning bool    `yaml:"phrased_running"`
	PhrasedSummary bool    `yaml:"phrased_summary"`
	Palette        Palette `yaml:"palette"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:         "auto",
		Parallel:       1,
		Reports:        ".treeport-reports",
		Summary:        true,
		LevelPrefix:    true,
		Color:          ColorAuto,
		PhrasedRunning: true,
		PhrasedSummary: true,
	}
}

// Load reads path on top of the defaults. An empty path means DefaultPath,
// which may be missing; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks enumerated values and normalizes their case.
func (c *Config) Validate() error {
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q, want auto, always or never", ErrInvalidConfig, c.Color)
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "auto", "gotest", "junit", "yaml":
	default:
		return fmt.Errorf("%w: format %q, want auto, gotest, junit or yaml", ErrInvalidConfig, c.Format)
	}

	if c.Parallel < 1 {
		return fmt.Errorf("%w: parallel must be at least 1, got %d", ErrInvalidConfig, c.Parallel)
	}

	return nil
}
