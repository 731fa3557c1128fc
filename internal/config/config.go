// Package config defines process configuration and its layered loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: json or text.
	LogFormat string `koanf:"log_format"`

	// MetricsAddr is the listen address of the operational HTTP surface.
	MetricsAddr string `koanf:"metrics_addr"`

	// WeakThreshold is the score below which a subject is weak.
	WeakThreshold float64 `koanf:"weak_threshold"`

	// WorkerCount sets the number of grading workers in batch mode.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// ShardCount configures the number of shards in the result store.
	ShardCount int `koanf:"shard_count"`

	// CataloguePath and RubricsPath override the embedded data when set.
	CataloguePath string `koanf:"catalogue_path"`
	RubricsPath   string `koanf:"rubrics_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "json",
		MetricsAddr:   ":9090",
		WeakThreshold: 70,
		WorkerCount:   runtime.NumCPU(),
		QueueSize:     10_000,
		ShardCount:    16,
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MetricsAddr == "" {
		return fmt.Errorf("%w: metrics_addr must not be empty", ErrInvalidConfig)
	}
	if c.WeakThreshold <= 0 || c.WeakThreshold > 100 {
		return fmt.Errorf("%w: weak_threshold %v outside (0,100]", ErrInvalidConfig, c.WeakThreshold)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.ShardCount <= 0 {
		return fmt.Errorf("%w: shard_count must be positive", ErrInvalidConfig)
	}
	return nil
}
