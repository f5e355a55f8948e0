package main

import (
	"context"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/satvik2131/lamars-truck-backend/internal/config"
	"github.com/satvik2131/lamars-truck-backend/internal/db"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.MetadataStore != config.MetadataStoreMariaDB {
		logger.Infof(ctx, "metadata store is %q, no SQL migrations to apply", cfg.MetadataStore)
		return
	}

	database, err := db.New(migration.WithMultiStatements(cfg.MariaDBDSN), cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}
