package main

import (
	"context"
	"fmt"
	"log/slog"
)

// handleMigrations runs a goose command against the configured database.
func handleMigrations(ctx context.Context, database *appDatabase, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations",
		"command", command,
		"driver", database.driver)

	if err := database.migrate(ctx, database.db, command, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
