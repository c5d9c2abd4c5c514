// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the CLI commands.
type Config struct {
	LogLevel string `env:"PARLEY_LOG_LEVEL" envDefault:"info"`
	HTTPAddr string `env:"PARLEY_HTTP_ADDR" envDefault:":8080"`
	Metrics  bool   `env:"PARLEY_METRICS" envDefault:"true"`

	// MaxScriptSize caps scripts received by serve and mcp, in bytes.
	MaxScriptSize int `env:"PARLEY_MAX_SCRIPT_SIZE" envDefault:"1048576"`
	// MaxBodySize caps HTTP request bodies, node documents included, in bytes.
	MaxBodySize int64 `env:"PARLEY_MAX_BODY_SIZE" envDefault:"8388608"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
