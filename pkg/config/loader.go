package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from environment variables declared through `env` tags.
// The storefront's own config is the canonical user:
//
//	type Config struct {
//	    HTTPPort      int    `env:"HTTP_PORT" envDefault:"8080"`
//	    SessionSecret string `env:"SESSION_SECRET"`
//	    RedisAddr     string `env:"REDIS_ADDR"`
//	}
//
// Defaults come from envDefault tags; validation of the parsed values is the
// caller's concern.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
