// Package config handles resolving configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds the resolved runtime configuration for the backend.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// ListenAddress is the host:port the HTTP API binds to.
	ListenAddress string `yaml:"listen_address"`
	// DBFilepath is the path to the SQLite database file.
	DBFilepath string `yaml:"db_filepath"`
	// DevMode enables request logging and source locations in log output.
	DevMode bool `yaml:"dev_mode"`
}

// Default returns a version of the config with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		ListenAddress: "localhost:3000",
		DBFilepath:    filepath.Join(xdg.DataHome, "qfoods", "db.sqlite"),
		DevMode:       false,
	}
}

// Load loads a YAML configuration file from a path, merges it with defaults,
// and validates it for completeness. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	if _, ok := levels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.ListenAddress == "" {
		return errors.New("listen_address must not be empty")
	}
	if c.DBFilepath == "" {
		return errors.New("db_filepath must not be empty")
	}
	return nil
}

// Level returns the slog level for the configured log_level string.
func (c *Config) Level() slog.Level {
	return levels[c.LogLevel]
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}
