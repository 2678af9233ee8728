package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	redisstorage "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/persistence/redis"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// RedisConfig selects the Redis server backing the redis storage driver.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	StorageDriver     string
	PostgresDSN       string
	Redis             RedisConfig
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	StaticDir         string
	RateLimitRPS      float64
	RateLimitBurst    int
}

// LoadConfig seeds the environment from ENV_FILE (default .env) when present, then reads
// environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := loadDotEnv(envDefault("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Port:          envDefault("PORT", "8080"),
		StorageDriver: strings.ToLower(envDefault("STORAGE_DRIVER", StorageMemory)),
		PostgresDSN:   strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		Redis: RedisConfig{
			Addr:      envDefault("REDIS_ADDR", "localhost:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			KeyPrefix: envDefault("REDIS_KEY_PREFIX", redisstorage.DefaultKeyPrefix),
		},
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		StaticDir:         envDefault("STATIC_DIR", "frontend"),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be one of %s, %s, %s; got %q", StorageMemory, StoragePostgres, StorageRedis, cfg.StorageDriver)
	}

	var err error
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.Redis.DB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must not be negative")
	}
	if cfg.RateLimitBurst, err = intEnv("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number")
		}
		cfg.RateLimitRPS = rps
	}
	return cfg, nil
}

// RateLimitEnabled reports whether per-client rate limiting is configured.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return value, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
