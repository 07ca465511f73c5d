package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/cards-api/internal/api"
	apiMiddleware "github.com/phrazzld/cards-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	cardHandler := api.NewCardHandler(app.cardStore, app.logger)

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", cardHandler.ListCards)
		r.Post("/", cardHandler.CreateCard)
		r.Patch("/{id}", cardHandler.UpdateCard)
		r.Delete("/{id}", cardHandler.DeleteCard)
	})

	r.Get("/health", app.health)

	return r
}

// health reports whether the database is reachable.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, "OK"
	if err := app.cardStore.Ping(r.Context()); err != nil {
		app.logger.Warn("Health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, "Service Unavailable"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
