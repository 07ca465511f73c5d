// Package main implements the entry point for the cards API server, a small
// CRUD service for board cards backed by PostgreSQL or SQLite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/phrazzld/cards-api/internal/platform/migrate"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		fmt.Sprintf("run a migration command (%s) and exit", strings.Join(migrate.Commands, "|")))
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// run wires the application together. With a non-empty migrateCmd it only
// runs that migration command; otherwise it migrates up and serves HTTP
// until interrupted.
func run(ctx context.Context, migrateCmd string) error {
	if migrateCmd != "" && !migrate.IsCommand(migrateCmd) {
		return fmt.Errorf("unknown migration command %q", migrateCmd)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	database, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer database.close(logger)
		return handleMigrations(ctx, database, migrateCmd, logger)
	}

	if err := handleMigrations(ctx, database, migrate.CommandUp, logger); err != nil {
		database.close(logger)
		return err
	}

	app := newApplication(cfg, logger, database)
	return app.Run(ctx)
}
