// Package config loads server settings from the environment.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server needs at startup. Values come from
// SPLITPAY_* environment variables.
type Config struct {
	Port      int           `envconfig:"PORT" default:"8080"`
	DBPath    string        `envconfig:"DB_PATH" default:"./data/splitpay.db"`
	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("splitpay", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("SPLITPAY_JWT_SECRET must be set")
	}
	return &cfg, nil
}
