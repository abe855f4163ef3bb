package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every runtime setting of the storefront. Values come from
// the environment; cmd/server preloads a .env file in development.
type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendBaseURL is the root of the store-rating REST API this app
	// is a client of.
	BackendBaseURL string `env:"BACKEND_BASE_URL, default=http://localhost:5000"`

	// SessionTTL bounds how long a persisted bearer token is kept.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	// CookieSecure marks the session cookie Secure; enable behind TLS.
	CookieSecure bool `env:"COOKIE_SECURE, default=false"`

	// SearchDebounce is the quiet window for owner search-as-you-type.
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE, default=300ms"`

	Redis RedisConfig
}

// RedisConfig configures the session token store.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
