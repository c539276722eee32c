package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port             string
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	LogLevel         string
	LogFormat        string
	DefaultsCacheTTL time.Duration
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "dine.db")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}

	ttl, err := time.ParseDuration(getEnv("DEFAULTS_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULTS_CACHE_TTL: %w", err)
	}
	cfg.DefaultsCacheTTL = ttl

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.DBDriver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return fmt.Errorf("DB_PATH is required for driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DefaultsCacheTTL < 0 {
		return fmt.Errorf("DEFAULTS_CACHE_TTL must not be negative")
	}
	return nil
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
