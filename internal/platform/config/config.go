// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A '.env' file in the
working directory, when present, is loaded first via 'joho/godotenv'; real
environment variables always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (storage, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
)

// Backend identifies which storage adapter a connection string selects.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
	BackendMemory   Backend = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DatabaseURL is the storage connection string. DB is accepted as an alias.
	DatabaseURL string `env:"DATABASE_URL"`
	DB          string `env:"DB"`

	// MongoDatabase names the database when a mongodb:// URI carries no path.
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"library"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the book cache.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] and validates it.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.StorageURL() == "" {
		return nil, errors.New("config: DATABASE_URL (or DB) is required")
	}

	if _, err := cfg.Backend(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StorageURL returns the effective connection string.
func (c *Config) StorageURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DB
}

// Backend resolves the storage adapter from the connection string scheme.
func (c *Config) Backend() (Backend, error) {
	parsed, err := url.Parse(c.StorageURL())
	if err != nil {
		return "", fmt.Errorf("config: invalid storage URL: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case constants.SchemePostgres, constants.SchemePostgreSQL:
		return BackendPostgres, nil
	case constants.SchemeMongo, constants.SchemeMongoSRV:
		return BackendMongo, nil
	case constants.SchemeMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("config: unsupported storage scheme %q", parsed.Scheme)
	}
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsOriginAllowed reports whether a CORS origin may access the API outside development.
func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
