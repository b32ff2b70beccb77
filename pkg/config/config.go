package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// UI Settings
	Colorize   string `yaml:"colorize"`    // auto, always, never
	ColorTheme string `yaml:"color_theme"` // auto, dark, light

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text, json

	// Warn when the target is not on a bcachefs mount
	CheckFilesystem bool `yaml:"check_filesystem"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Colorize:        "auto",
		ColorTheme:      "auto",
		LogLevel:        "warn",
		LogFormat:       "text",
		CheckFilesystem: true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/bcattr/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "bcattr", "config.yaml"), nil
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.Colorize == "" {
		cfg.Colorize = "auto"
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if !isOneOf(cfg.Colorize, "auto", "always", "never") {
		return nil, fmt.Errorf("invalid colorize value %q (want auto, always or never)", cfg.Colorize)
	}
	if !isOneOf(cfg.ColorTheme, "auto", "dark", "light") {
		cfg.ColorTheme = "auto"
	}

	return cfg, nil
}

// ResolveColorize turns the colorize setting into a decision.
// isTerminal is consulted only for "auto".
func (c *Config) ResolveColorize(isTerminal bool) bool {
	switch c.Colorize {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}

func isOneOf(v string, valid ...string) bool {
	for _, s := range valid {
		if v == s {
			return true
		}
	}
	return false
}
