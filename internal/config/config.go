package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Chart struct {
		Route    string `yaml:"route"`
		Currency string `yaml:"currency"`
		Width    int    `yaml:"width"`
		Height   int    `yaml:"height"`
		Timezone string `yaml:"timezone"`
	} `yaml:"chart"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; every setting has a default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "railtracker.db"
	}
	if cfg.Chart.Route == "" {
		cfg.Chart.Route = "Karlsruhe -> Munich"
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 1200
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 600
	}

	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart.width and chart.height must be positive")
	}
	if c.Chart.Timezone != "" {
		if _, err := time.LoadLocation(c.Chart.Timezone); err != nil {
			return fmt.Errorf("chart.timezone: %w", err)
		}
	}
	return nil
}

// Location returns the zone used for tick labels, UTC when unset.
func (c *Config) Location() *time.Location {
	if c.Chart.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Chart.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
