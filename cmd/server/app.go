package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cards-api/internal/config"
	"github.com/phrazzld/cards-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	database  *appDatabase
	cardStore store.CardStore
}

// newApplication creates a new application instance from already established
// dependencies.
func newApplication(cfg *config.Config, logger *slog.Logger, database *appDatabase) *application {
	return &application{
		config:    cfg,
		logger:    logger,
		database:  database,
		cardStore: database.cardStore,
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.database.close(app.logger)
	app.logger.Info("Application shutdown completed")
}
