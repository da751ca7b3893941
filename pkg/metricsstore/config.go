// Package metricsstore persists metrics.RequestRecord values to Postgres via
// pgx, with schema managed by embedded golang-migrate migrations.
package metricsstore

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the connection settings for the metrics store.
type Config struct {
	DSN string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// LoadConfigFromEnv loads Config from environment variables with
// production-ready defaults.
func LoadConfigFromEnv() (Config, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("METRICS_DB_MAX_CONNS", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid METRICS_DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnvOrDefault("METRICS_DB_MIN_CONNS", "2"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid METRICS_DB_MIN_CONNS: %w", err)
	}
	maxLifetime, err := time.ParseDuration(getEnvOrDefault("METRICS_DB_CONN_MAX_LIFETIME", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid METRICS_DB_CONN_MAX_LIFETIME: %w", err)
	}
	maxIdleTime, err := time.ParseDuration(getEnvOrDefault("METRICS_DB_CONN_MAX_IDLE_TIME", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid METRICS_DB_CONN_MAX_IDLE_TIME: %w", err)
	}

	cfg := Config{
		DSN:             os.Getenv("METRICS_DATABASE_URL"),
		MaxConns:        int32(maxConns),
		MinConns:        int32(minConns),
		MaxConnLifetime: maxLifetime,
		MaxConnIdleTime: maxIdleTime,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for obviously broken values.
func (c Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("METRICS_DATABASE_URL is required")
	}
	if c.MaxConns < 1 {
		return fmt.Errorf("METRICS_DB_MAX_CONNS must be at least 1")
	}
	if c.MinConns < 0 || c.MinConns > c.MaxConns {
		return fmt.Errorf("METRICS_DB_MIN_CONNS (%d) must be between 0 and METRICS_DB_MAX_CONNS (%d)", c.MinConns, c.MaxConns)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
