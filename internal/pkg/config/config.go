// Package config reads the portal configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Backend BackendConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Audit   AuditConfig
	Login   LoginConfig
	Payment PaymentConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=24h"`
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
	// AllowedURLs are the extra backends the settings screen may switch to.
	AllowedURLs []string `env:"BACKEND_ALLOWED_URLS"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bluemoon_portal"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=false"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

type LoginConfig struct {
	// Rate is the sustained number of login attempts per second per client.
	Rate  float64 `env:"LOGIN_RATE,  default=0.2"`
	Burst int     `env:"LOGIN_BURST, default=5"`
}

type PaymentConfig struct {
	Account string `env:"PAYMENT_ACCOUNT"`
	Bank    string `env:"PAYMENT_BANK"`
}

// Production reports whether the portal runs in production.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Production() && len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes in production"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Login.Rate <= 0 || c.Login.Burst <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE and LOGIN_BURST must be positive"))
	}
	return errors.Join(errs...)
}
