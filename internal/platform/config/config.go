// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (upstream client, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/characters-gateway/internal/platform/validate"
)

// Cache backends selectable through CACHE_BACKEND.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

// Environment modes selectable through ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// # Configuration Schema

// Config holds all runtime configuration for the gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// CORSAllowedOrigins restricts cross-origin callers. Empty admits any origin.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// LogDir is the root of the file log sinks. "test" mode appends "test_" to its base name.
	LogDir        string `env:"LOG_DIR"           envDefault:"logs"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB"   envDefault:"100"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS"  envDefault:"30"`

	// Upstream REST service
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL" envDefault:"https://knautiluz-characters.herokuapp.com"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT"  envDefault:"10s"`

	// GraphQL execution
	MaxParallelism    int           `env:"GRAPHQL_MAX_PARALLELISM" envDefault:"10"`
	DefaultMaxAge     time.Duration `env:"CACHE_DEFAULT_MAX_AGE"   envDefault:"0s"`
	PersistedQueryTTL time.Duration `env:"PERSISTED_QUERY_TTL"     envDefault:"1h"`

	// Cache backend
	CacheBackend string `env:"CACHE_BACKEND"  envDefault:"memory"`
	CacheMaxCost int64  `env:"CACHE_MAX_COST" envDefault:"67108864"`

	// Key-Value Cache (Redis)
	RedisHost           string        `env:"REDIS_HOSTNAME"        envDefault:"localhost"`
	RedisPort           string        `env:"REDIS_PORT"            envDefault:"6379"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"5s"`

	// Metrics
	MetricsAppLabel string `env:"METRICS_APP_LABEL" envDefault:"knautiluz-marvel-characters-api"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks the cross-field rules the env tags cannot express.
func (c *Config) Validate() error {
	v := &validate.Validator{}

	v.Required("PORT", c.ServerPort).
		OneOf("ENVIRONMENT", c.Environment, EnvDevelopment, EnvProduction, EnvTest).
		AbsoluteURL("UPSTREAM_BASE_URL", c.UpstreamBaseURL).
		Custom("UPSTREAM_TIMEOUT", c.UpstreamTimeout <= 0, "Must be positive").
		Range("GRAPHQL_MAX_PARALLELISM", c.MaxParallelism, 1, 1000).
		Range("LOG_MAX_SIZE_MB", c.LogMaxSizeMB, 1, 10240).
		Range("LOG_MAX_AGE_DAYS", c.LogMaxAgeDays, 1, 3650).
		Custom("CACHE_DEFAULT_MAX_AGE", c.DefaultMaxAge < 0, "Must not be negative").
		OneOf("CACHE_BACKEND", c.CacheBackend, CacheBackendRedis, CacheBackendMemory, CacheBackendNone)

	if c.CacheBackend == CacheBackendRedis {
		v.Required("REDIS_HOSTNAME", c.RedisHost).Required("REDIS_PORT", c.RedisPort)
	}

	return v.Err()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
