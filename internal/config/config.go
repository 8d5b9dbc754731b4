/*
Package config
File: config.go
Description:
    Server configuration, read from a YAML file.
    Every field has a default, so an empty or missing file still yields a
    runnable server. Game balance lives in the catalog, not here.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type RateLimit struct {
	PerSecond float64 `yaml:"per_second"` // 0 disables limiting
	Burst     int     `yaml:"burst"`
}

type Config struct {
	Listen               string    `yaml:"listen"`
	TickIntervalMS       int       `yaml:"tick_interval_ms"`
	PulseEveryTicks      int       `yaml:"pulse_every_ticks"`
	AutosaveEverySeconds int       `yaml:"autosave_every_seconds"`
	DataDir              string    `yaml:"data_dir"`
	DBPath               string    `yaml:"db_path"` // Relative paths resolve against DataDir
	SaveSlot             string    `yaml:"save_slot"`
	CatalogPath          string    `yaml:"catalog_path"` // Empty uses the embedded catalog
	RateLimit            RateLimit `yaml:"rate_limit"`
	CORSOrigin           string    `yaml:"cors_origin"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Listen:               ":8081",
		TickIntervalMS:       100,
		PulseEveryTicks:      10,
		AutosaveEverySeconds: 30,
		DataDir:              "./data",
		DBPath:               "idleforge.db",
		SaveSlot:             "main",
		RateLimit:            RateLimit{PerSecond: 20, Burst: 40},
		CORSOrigin:           "*",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, cfg.Validate()
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Listen == "":
		return fmt.Errorf("listen address is empty")
	case c.TickIntervalMS <= 0:
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMS)
	case c.PulseEveryTicks <= 0:
		return fmt.Errorf("pulse_every_ticks must be positive, got %d", c.PulseEveryTicks)
	case c.AutosaveEverySeconds <= 0:
		return fmt.Errorf("autosave_every_seconds must be positive, got %d", c.AutosaveEverySeconds)
	case c.SaveSlot == "":
		return fmt.Errorf("save_slot is empty")
	case c.RateLimit.PerSecond < 0:
		return fmt.Errorf("rate_limit.per_second must not be negative")
	case c.RateLimit.PerSecond > 0 && c.RateLimit.Burst <= 0:
		return fmt.Errorf("rate_limit.burst must be positive when limiting is on")
	}
	return nil
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

func (c Config) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveEverySeconds) * time.Second
}

// DatabasePath resolves DBPath against DataDir.
func (c Config) DatabasePath() string {
	if filepath.IsAbs(c.DBPath) || c.DataDir == "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, c.DBPath)
}
