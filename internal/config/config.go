// Package config loads the kvtag configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/kvtag/internal/logging"
	"github.com/simonhull/kvtag/internal/types"
)

// Config holds all settings of a kvtag run.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	Script  ScriptConfig   `yaml:"script"`
	Output  types.Mode     `yaml:"output"`
}

// ScriptConfig tunes the generated encoding script.
type ScriptConfig struct {
	// Cover image dimensions required by chkimage, as WIDTHxHEIGHT.
	ImageSize string `yaml:"image_size"`

	// flac --compression-level-N
	CompressionLevel int `yaml:"compression_level"`

	// Picture type passed to flac --picture (3 = front cover).
	PictureType int `yaml:"picture_type"`

	// Size limits for cover images in bytes.
	JPEGMaxSize int `yaml:"jpeg_max_size"`
	PNGMaxSize  int `yaml:"png_max_size"`
}

// DefaultScriptConfig returns the script settings used without a config file.
func DefaultScriptConfig() ScriptConfig {
	return ScriptConfig{
		ImageSize:        "300x300",
		CompressionLevel: 8,
		PictureType:      3,
		JPEGMaxSize:      85000,
		PNGMaxSize:       505000,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:  types.ModeScript,
		Logging: logging.Default(),
		Script:  DefaultScriptConfig(),
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults; a path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variables that override the file.
const (
	EnvLogLevel = "KVTAG_LOG_LEVEL"
	EnvOutput   = "KVTAG_OUTPUT"
)

func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if out := os.Getenv(EnvOutput); out != "" {
		mode, err := types.ParseMode(out)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOutput, err)
		}
		c.Output = mode
	}
	return nil
}

var imageSize = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

// Validate checks the configuration for values the renderers cannot use.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Output < 0 || int(c.Output) >= len(types.Modes()) {
		return fmt.Errorf("invalid output mode: %v", c.Output)
	}

	s := c.Script
	if s.CompressionLevel < 0 || s.CompressionLevel > 8 {
		return fmt.Errorf("invalid compression level: %d (valid: 0-8)", s.CompressionLevel)
	}
	if s.PictureType < 0 || s.PictureType > 20 {
		return fmt.Errorf("invalid picture type: %d (valid: 0-20)", s.PictureType)
	}
	if s.JPEGMaxSize <= 0 || s.PNGMaxSize <= 0 {
		return fmt.Errorf("image size limits must be positive")
	}
	if !imageSize.MatchString(s.ImageSize) {
		return fmt.Errorf("invalid image size: %q (want WIDTHxHEIGHT)", s.ImageSize)
	}
	return nil
}
