package config

import (
	"fmt"
	"strconv"
	"strings"

	pkgconfig "github.com/utafrali/bookshop/pkg/config"
	pkgvalidator "github.com/utafrali/bookshop/pkg/validator"
)

// Config holds all configuration for the bookshop server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080" validate:"gte=1,lte=65535"`

	// Session
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-session-secret" validate:"required"`
	SessionTTL    int    `env:"SESSION_TTL_HOURS" envDefault:"24" validate:"gte=1"`

	// Payment simulation: card numbers ending in this suffix are declined.
	BadCardSuffix string `env:"PAYMENT_BAD_CARD_SUFFIX" envDefault:"1111"`

	// Discount codes as "code:percent" pairs (codes case-insensitive).
	DiscountCodes []string `env:"DISCOUNT_CODES" envDefault:"save10:10" envSeparator:","`

	// Optional Redis cart store. Empty keeps the cart in memory.
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours for the Redis store (default: 7 days).
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Optional Postgres store for users and orders. Empty keeps them in memory.
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`

	// Optional Kafka event publishing. Empty disables it.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load bookshop config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if err := pkgvalidator.Validate(c); err != nil {
		return fmt.Errorf("invalid bookshop config: %w", err)
	}
	if _, err := c.Discounts(); err != nil {
		return err
	}
	return nil
}

// Discounts parses the configured discount codes into an upper-cased
// code -> percent table.
func (c *Config) Discounts() (map[string]float64, error) {
	table := make(map[string]float64, len(c.DiscountCodes))
	for _, pair := range c.DiscountCodes {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		code, percentStr, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid discount code entry %q, want code:percent", pair)
		}

		percent, err := strconv.ParseFloat(strings.TrimSpace(percentStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid discount percent in %q: %w", pair, err)
		}
		if percent <= 0 || percent > 100 {
			return nil, fmt.Errorf("discount percent out of range in %q", pair)
		}

		table[strings.ToUpper(strings.TrimSpace(code))] = percent
	}
	return table, nil
}
