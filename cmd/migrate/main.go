package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-order-tracker/internal/app/api"
	"github.com/Apurer/go-gin-order-tracker/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-tracker/internal/platform/postgres"
)

// One-shot job applying the orders schema to POSTGRES_DSN.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set; cannot migrate")
	}

	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to unwrap postgres connection: %v", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate orders schema: %v", err)
	}
	logger.Info("orders schema migrated")
}
