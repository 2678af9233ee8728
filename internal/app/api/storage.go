package api

import (
	"context"
	"log/slog"

	ordermemory "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/persistence/postgres"
	orderredis "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/persistence/redis"
	orderports "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-tracker/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-tracker/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-order-tracker/internal/platform/redis"
)

// StorageBackend is the storage a process ended up with. Driver names the backend
// actually in use, which differs from the configured one after a fallback to memory.
type StorageBackend struct {
	Storage orderports.Storage
	Driver  string
	Close   func()
}

// Shared reports whether other processes see the same orders.
func (b StorageBackend) Shared() bool {
	return IsSharedStorage(b.Driver)
}

// IsSharedStorage reports whether driver stores orders outside the process.
func IsSharedStorage(driver string) bool {
	return driver == StoragePostgres || driver == StorageRedis
}

// BuildStorage constructs the storage selected by cfg.StorageDriver. Connection
// failures fall back to in-memory storage.
func BuildStorage(ctx context.Context, cfg Config, logger *slog.Logger) StorageBackend {
	var (
		storage orderports.Storage
		cleanup func()
	)
	switch cfg.StorageDriver {
	case StoragePostgres:
		storage, cleanup = buildPostgresStorage(ctx, cfg, logger)
	case StorageRedis:
		storage, cleanup = buildRedisStorage(ctx, cfg, logger)
	}
	if storage == nil {
		if cfg.StorageDriver == StorageMemory || cfg.StorageDriver == "" {
			logger.Info("order storage configured in memory")
		}
		return StorageBackend{Storage: ordermemory.NewStorage(), Driver: StorageMemory, Close: func() {}}
	}
	return StorageBackend{Storage: storage, Driver: cfg.StorageDriver, Close: cleanup}
}

func buildPostgresStorage(ctx context.Context, cfg Config, logger *slog.Logger) (orderports.Storage, func()) {
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return nil, nil
	}
	if err := migrations.Run(db); err != nil {
		_ = sqlDB.Close()
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		return nil, nil
	}
	logger.Info("order storage configured with postgres")
	return orderpostgres.NewStorage(db), func() { _ = sqlDB.Close() }
}

func buildRedisStorage(ctx context.Context, cfg Config, logger *slog.Logger) (orderports.Storage, func()) {
	client, err := platformredis.Connect(ctx, platformredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("failed to connect to redis, falling back to memory", slog.String("error", err.Error()))
		return nil, nil
	}
	logger.Info("order storage configured with redis", slog.String("addr", cfg.Redis.Addr), slog.String("prefix", cfg.Redis.KeyPrefix))
	return orderredis.NewStorage(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }
}
