package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when no config file is present
const (
	DefaultListenAddr         = ":8080"
	DefaultPurgeRetentionDays = 365
	DefaultPurgeBatchSize     = 500
)

// Config holds service policy settings. Infrastructure endpoints (database,
// RabbitMQ, OTLP) come from environment variables instead.
type Config struct {
	ListenAddr         string `yaml:"listen_addr"`
	PurgeRetentionDays int    `yaml:"purge_retention_days"`
	PurgeBatchSize     int    `yaml:"purge_batch_size"`
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned. Path defaults to $CLINIC_CONFIG or clinic.yaml.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:         DefaultListenAddr,
		PurgeRetentionDays: DefaultPurgeRetentionDays,
		PurgeBatchSize:     DefaultPurgeBatchSize,
	}

	if path == "" {
		path = os.Getenv("CLINIC_CONFIG")
	}
	if path == "" {
		path = "clinic.yaml"
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.PurgeRetentionDays <= 0 {
		cfg.PurgeRetentionDays = DefaultPurgeRetentionDays
	}
	if cfg.PurgeBatchSize <= 0 {
		cfg.PurgeBatchSize = DefaultPurgeBatchSize
	}

	return cfg, nil
}

// PurgeRetention returns the retention window as a duration
func (c Config) PurgeRetention() time.Duration {
	return time.Duration(c.PurgeRetentionDays) * 24 * time.Hour
}
