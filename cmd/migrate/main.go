package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"go.uber.org/zap"

	"formulator-backend/internal/shared/config"
	"formulator-backend/internal/shared/storage/db"
	"formulator-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	cleanup := telemetry.Init(cfg.LogLevel)
	defer cleanup()

	if cfg.DatabaseURL == "" {
		telemetry.L().Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.L().Error("failed to connect database", zap.Error(err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.L().Error("failed to run migrations", zap.Error(err))
		os.Exit(1)
	}
	telemetry.L().Info("migrations applied")
}
