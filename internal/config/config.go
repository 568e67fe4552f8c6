// Package config provides configuration management for mtx.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mtext-cli/pkg/mtext"
)

// DefaultHeight is the nominal text height handed to the renderer when none is configured.
const DefaultHeight = 2.5

// Config holds the mtx configuration.
type Config struct {
	DefaultFont    string   `yaml:"default_font,omitempty"`
	Height         float64  `yaml:"height,omitempty"`
	WrapWidth      float64  `yaml:"wrap_width,omitempty"`
	MarkerTracking *float64 `yaml:"marker_tracking,omitempty"`
	MarkerWidth    *float64 `yaml:"marker_width,omitempty"`
	OutputFormat   string   `yaml:"output_format,omitempty"`
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.Height < 0 {
		return errors.New("height must not be negative")
	}
	if c.WrapWidth < 0 {
		return errors.New("wrap_width must not be negative")
	}
	if c.MarkerTracking != nil && *c.MarkerTracking < 0 {
		return errors.New("marker_tracking must not be negative")
	}
	if c.MarkerWidth != nil && *c.MarkerWidth < 0 {
		return errors.New("marker_width must not be negative")
	}
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("invalid output_format %q", c.OutputFormat)
	}
	return nil
}

// ApplyDefaults fills unset values with the built-in defaults. The marker
// values are pointers so that an explicit zero survives.
func (c *Config) ApplyDefaults() {
	if c.DefaultFont == "" {
		c.DefaultFont = mtext.DefaultFontFamily
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.MarkerTracking == nil {
		c.MarkerTracking = mtext.Float(mtext.DefaultMarkerTracking)
	}
	if c.MarkerWidth == nil {
		c.MarkerWidth = mtext.Float(mtext.DefaultMarkerWidth)
	}
}

// ParseOptions returns the parser options described by the configuration.
func (c *Config) ParseOptions() mtext.ParseOptions {
	return mtext.ParseOptions{
		MarkerTracking: c.MarkerTracking,
		MarkerWidth:    c.MarkerWidth,
	}
}

// Serializer returns the MText serializer described by the configuration.
func (c *Config) Serializer() mtext.Serializer {
	return mtext.Serializer{DefaultFont: c.DefaultFont}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and parseable.
func (c *Config) LoadFromEnv() {
	if font := os.Getenv("MTX_FONT"); font != "" {
		c.DefaultFont = font
	}
	if v, ok := getEnvFloat("MTX_HEIGHT"); ok {
		c.Height = v
	}
	if v, ok := getEnvFloat("MTX_WRAP_WIDTH"); ok {
		c.WrapWidth = v
	}
	if output := os.Getenv("MTX_OUTPUT"); output != "" {
		c.OutputFormat = output
	}
}

// getEnvFloat returns the numeric value of an env var, or ok=false if it is unset or not a number.
func getEnvFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mtx", "config.yml")
	}

	// Fall back to ~/.config/mtx/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mtx", "config.yml")
	}

	return filepath.Join(home, ".config", "mtx", "config.yml")
}

// ResolvePath returns the --config flag value, or the default path when it is empty.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return DefaultConfigPath()
}

// LoadValidated loads the configuration with env overrides and validates it.
func LoadValidated(flagValue string) (*Config, error) {
	cfg, err := LoadWithEnv(ResolvePath(flagValue))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'mtx init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'mtx init' to configure)", err)
	}
	return cfg, nil
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides with environment
// variables and fills in defaults. A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
