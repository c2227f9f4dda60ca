package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BcryptCost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
	BcryptCost         int           `env:"BCRYPT_COST,          default=10"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,     default=10s"`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER,         default=postgres"`
	URL          string `env:"DATABASE_URL,      required"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
}

// RedisConfig configures the contact-list cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,  default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL, default=5m"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l, typically envconfig.MapLookuper in tests.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
