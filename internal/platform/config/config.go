// Copyright (c) 2026 Aperture. All rights reserved.

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
  - DI-Friendly: Passed to core components (record store, blob client) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Backend selection happens exactly once, here: a present REDIS_URL makes the
remote key-value service the primary record backend with the local file as
fallback; an absent one makes the local file the only backend.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Aperture API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote key-value record backend (optional; file fallback when absent)
	RedisURL string `env:"REDIS_URL"`

	// DataDir is the directory holding the local JSON record file and the
	// admin credential file.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Session cookie signing secret
	SessionSecret string `env:"SESSION_SECRET,required"`

	// Object Storage (MinIO / S3-compatible)
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"    envDefault:"images"`
	S3UseSSL    bool   `env:"S3_USE_SSL"   envDefault:"false"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// HasRedis reports whether a remote record backend is configured.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

// HasBlobStore reports whether the object storage client can be constructed.
func (c *Config) HasBlobStore() bool {
	return c.S3Endpoint != ""
}

// AllowedOrigins returns the extra CORS origins configured for production.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}
	origins := strings.Split(c.ExtraOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
