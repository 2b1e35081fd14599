// Package config handles configuration loading and validation for daybook.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Locale   string       `yaml:"locale"`
	Timezone string       `yaml:"timezone"`
}

// ServerConfig points the client at a journal server.
type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	// Token is the bearer credential for authenticated endpoints.
	// Acquiring it is out of scope; paste one from the web dashboard.
	// The DAYBOOK_TOKEN environment variable overrides this value.
	Token string `yaml:"token"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "https://api.daybook.app",
		},
		Locale:   "en",
		Timezone: "UTC",
	}
}

// Load reads configuration from the given path. If the path is empty or the
// file doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if token := os.Getenv("DAYBOOK_TOKEN"); token != "" {
		cfg.Server.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.Timezone == "" {
		c.Timezone = defaults.Timezone
	}
}
