// Package config loads the service configuration document.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Listen           string `yaml:"listen"`
	DatabasePath     string `yaml:"databasePath"`
	AchievementsFile string `yaml:"achievementsFile"`
}

// Default returns the configuration used when no document is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a configuration file. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "hexmill.db"
	}
}

// Validate performs basic sanity checks.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen cannot be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("databasePath cannot be empty")
	}
	if c.AchievementsFile != "" {
		if _, err := os.Stat(c.AchievementsFile); err != nil {
			return fmt.Errorf("achievementsFile: %w", err)
		}
	}
	return nil
}
