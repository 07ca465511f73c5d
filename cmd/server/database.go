package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cards-api/internal/config"
	"github.com/phrazzld/cards-api/internal/platform/postgres"
	"github.com/phrazzld/cards-api/internal/platform/sqlite"
	"github.com/phrazzld/cards-api/internal/store"
)

// migrateFunc runs a goose command against db.
type migrateFunc func(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error

// appDatabase bundles the open connection pool with the card store and
// migration runner for the configured driver.
type appDatabase struct {
	driver    string
	db        *sql.DB
	cardStore store.CardStore
	migrate   migrateFunc
}

// setupAppDatabase opens the database selected by cfg.Database.Driver.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*appDatabase, error) {
	database := &appDatabase{driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to set up postgres database: %w", err)
		}
		database.db = db
		database.cardStore = postgres.NewPostgresCardStore(db, logger)
		database.migrate = postgres.Migrate

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to set up sqlite database: %w", err)
		}
		database.db = db.DB
		database.cardStore = sqlite.NewCardStore(db, logger)
		database.migrate = sqlite.Migrate

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	logger.Info("Database connection established", "driver", cfg.Database.Driver)
	return database, nil
}

// close releases the connection pool.
func (d *appDatabase) close(logger *slog.Logger) {
	if d == nil || d.db == nil {
		return
	}
	if err := d.db.Close(); err != nil {
		logger.Error("Error closing database connection", "error", err)
	}
}
