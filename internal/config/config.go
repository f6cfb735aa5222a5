// Package config loads and validates runtime settings at startup.
// Fail-fast: an invalid or missing required value is returned as an error
// and the process exits.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"jobmate/job-tracker/internal/model"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all runtime configuration for the tracker.
type Config struct {
	Env            string
	HTTPPort       string
	GRPCPort       string
	StorageDriver  string
	SQLitePath     string
	DatabaseURL    string
	RedisURL       string // optional unless StorageDriver is redis; enables events
	RedisPrefix    string
	CatalogPath    string // empty means the embedded catalog
	PremiumSource  string
	DigestSchedule string // cron expression for the simulated digest time
	LogLevel       string
	LogFormat      string
}

// IsProduction reports whether the tracker runs with production logging.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads environment variables (and config.yaml when present) and
// returns a validated Config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8082")
	v.SetDefault("GRPC_PORT", "9092")
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", "jobtracker.db")
	v.SetDefault("REDIS_PREFIX", "jobtracker:")
	v.SetDefault("PREMIUM_SOURCE", "LinkedIn")
	v.SetDefault("DIGEST_SCHEDULE", "0 9 * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		HTTPPort:       v.GetString("HTTP_PORT"),
		GRPCPort:       v.GetString("GRPC_PORT"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RedisURL:       v.GetString("REDIS_URL"),
		RedisPrefix:    v.GetString("REDIS_PREFIX"),
		CatalogPath:    v.GetString("CATALOG_PATH"),
		PremiumSource:  v.GetString("PREMIUM_SOURCE"),
		DigestSchedule: v.GetString("DIGEST_SCHEDULE"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of sqlite, postgres, redis, memory, got %q", c.StorageDriver)
	}

	if c.HTTPPort == "" || c.GRPCPort == "" {
		return fmt.Errorf("HTTP_PORT and GRPC_PORT must not be empty")
	}

	if !slices.Contains(model.Sources, model.Source(c.PremiumSource)) {
		names := make([]string, len(model.Sources))
		for i, src := range model.Sources {
			names[i] = string(src)
		}
		return fmt.Errorf("PREMIUM_SOURCE must be one of %s, got %q", strings.Join(names, ", "), c.PremiumSource)
	}

	if _, err := cron.ParseStandard(c.DigestSchedule); err != nil {
		return fmt.Errorf("DIGEST_SCHEDULE %q: %w", c.DigestSchedule, err)
	}
	return nil
}
