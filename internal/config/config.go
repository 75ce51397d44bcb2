// Package config holds process-wide mode flags and the fxquery.yaml settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level fxquery.yaml configuration.
type Config struct {
	// Queue configures the per-file query response queue.
	Queue QueueConfig `yaml:"queue"`

	// Store configures the query log.
	Store StoreConfig `yaml:"store"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// QueueConfig bounds the response queue.
type QueueConfig struct {
	// Capacity is the maximum number of undrained responses. Once reached, the
	// oldest response is dropped. Zero means DefaultQueueCapacity; negative
	// means unbounded.
	Capacity int `yaml:"capacity,omitempty"`
}

// StoreConfig selects the query log backend.
type StoreConfig struct {
	// Path is a SQLite database file, or ":memory:" for an in-process store.
	Path string `yaml:"path,omitempty"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is "console", "json", or empty to pick console on a terminal.
	Format string `yaml:"format,omitempty"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		data = nil
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Queue.Capacity == 0 {
		c.Queue.Capacity = DefaultQueueCapacity
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}
