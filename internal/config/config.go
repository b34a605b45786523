package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MinTokenSecretLength is the minimum accepted length for the JWT secret.
const MinTokenSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	TokenSecret    string `env:"TOKEN_SECRET,required"`
	TokenTTLMin    int    `env:"TOKEN_TTL_MINUTES" envDefault:"30"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	// DatabaseURL selects the Postgres store; when empty, state lives in
	// process memory and is lost on exit.
	DatabaseURL string `env:"DATABASE_URL"`

	// RedisURL enables the roadtrip read cache; when empty, caching is off.
	RedisURL string `env:"REDIS_URL"`

	// AdminUsers is a comma list of usernames that receive the admin role
	// at registration.
	AdminUsers string `env:"ADMIN_USERS"`

	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("TOKEN_SECRET must be at least %d bytes long, got %d",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	return cfg, nil
}

// Origins returns the allowed CORS origins as a slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AdminUsernames returns the bootstrap admin usernames as a slice.
func (c *Config) AdminUsernames() []string {
	if c.AdminUsers == "" {
		return nil
	}
	parts := strings.Split(c.AdminUsers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// UsePostgres reports whether a persistent store is configured.
func (c *Config) UsePostgres() bool { return c.DatabaseURL != "" }

// UseRedisCache reports whether the Redis read cache is configured.
func (c *Config) UseRedisCache() bool { return c.RedisURL != "" }
