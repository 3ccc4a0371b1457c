// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package config handles console-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend client, session store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the console is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Smart Energy console.
type Config struct {

	// Remote monitoring API
	APIBaseURL string `env:"API_URL" envDefault:"http://localhost:5000/api"`

	// StateDir is the directory holding the durable session database.
	StateDir string `env:"STATE_DIR" envDefault:"./data"`

	// ModeratorEmail is the fallback moderator roster, consulted only when
	// the backend omits an explicit role on the authenticated identity.
	ModeratorEmail string `env:"MODERATOR_EMAIL" envDefault:"protocolpsi@gmail.com"`

	// Runtime behavior
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the console is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the console is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
