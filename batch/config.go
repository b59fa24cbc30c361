package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds configuration for a Writer and for client construction.
type Config struct {
	// Endpoint overrides the table service endpoint (local emulators,
	// gateway proxies). Empty uses the environment's default.
	Endpoint string `yaml:"endpoint"`

	// Region is the service region used when constructing a client.
	Region string `yaml:"region"`

	// Profile names the shared credentials profile to load. Empty uses
	// the default credential chain.
	Profile string `yaml:"profile"`

	// FlushIntervalMS is the background flush period in milliseconds.
	// Default: 1000
	FlushIntervalMS int `yaml:"flush_interval_ms"`

	// MaxBatchSize caps operations per batch unit. The service rejects
	// batches over 100, so values clamp to [1, 100].
	// Default: 100
	MaxBatchSize int `yaml:"max_batch_size"`

	// FlushBudgetMS bounds one timer-driven flush cycle in milliseconds
	// so a slow table cannot starve the rest of the queue. Drain ignores
	// it. Default: 30000
	FlushBudgetMS int `yaml:"flush_budget_ms"`
}

// DefaultConfig returns the stock writer configuration.
func DefaultConfig() Config {
	return Config{
		FlushIntervalMS: 1000,
		MaxBatchSize:    100,
		FlushBudgetMS:   30000,
	}
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.validate()
	return c, nil
}

// validate fills defaults and clamps values to acceptable bounds.
func (c *Config) validate() {
	if c.FlushIntervalMS <= 0 {
		c.FlushIntervalMS = 1000
	}
	if c.MaxBatchSize <= 0 || c.MaxBatchSize > 100 {
		c.MaxBatchSize = 100
	}
	if c.FlushBudgetMS <= 0 {
		c.FlushBudgetMS = 30000
	}
}

func (c Config) flushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMS) * time.Millisecond
}

func (c Config) flushBudget() time.Duration {
	return time.Duration(c.FlushBudgetMS) * time.Millisecond
}
