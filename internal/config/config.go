// Package config provides configuration loading and validation for whirl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Spinner SpinnerConfig `yaml:"spinner"`
	History HistoryConfig `yaml:"history"`
}

// SpinnerConfig contains the spinner flags and the stream it draws on.
type SpinnerConfig struct {
	Sound    bool   `yaml:"sound" env:"WHIRL_SOUND"`
	Disabled bool   `yaml:"disabled" env:"WHIRL_DISABLED"`
	Force    bool   `yaml:"force" env:"WHIRL_FORCE"`
	Stream   string `yaml:"stream" env:"WHIRL_STREAM"`
}

// HistoryConfig contains run history settings.
type HistoryConfig struct {
	Dir      string `yaml:"dir" env:"WHIRL_HISTORY_DIR"`
	Disabled bool   `yaml:"disabled" env:"WHIRL_HISTORY_DISABLED"`
	Keep     int    `yaml:"keep" env:"WHIRL_HISTORY_KEEP"`
}

// DefaultConfigPath is the default path to look for the configuration file.
const DefaultConfigPath = "whirl.yaml"

// Streams the spinner can draw on.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Default values for optional configuration fields.
const (
	DefaultStream      = StreamStderr
	DefaultHistoryKeep = 100
)

// Load reads the configuration from path, then applies environment overrides.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultHistoryDir returns the default directory for run records.
func DefaultHistoryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".whirl", "runs"), nil
}

// applyDefaults sets default values for optional configuration fields.
func (c *Config) applyDefaults() {
	if c.Spinner.Stream == "" {
		c.Spinner.Stream = DefaultStream
	}
	if c.History.Keep == 0 {
		c.History.Keep = DefaultHistoryKeep
	}
}

// validate checks that all configuration fields hold acceptable values.
func (c *Config) validate() error {
	switch c.Spinner.Stream {
	case StreamStdout, StreamStderr:
	default:
		return fmt.Errorf("spinner.stream must be %q or %q, got %q", StreamStdout, StreamStderr, c.Spinner.Stream)
	}
	if c.History.Keep < 0 {
		return errors.New("history.keep must not be negative")
	}
	return nil
}
