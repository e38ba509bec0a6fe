package main

import (
	"net/http"

	"github.com/bchastanier/esltrack/internal/api"
	apiMiddleware "github.com/bchastanier/esltrack/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	eslHandler := api.NewEslHandler(app.eslStore, app.logger)

	r.Route("/api/esls", func(r chi.Router) {
		r.Post("/", eslHandler.CreateEsl)
		r.Get("/", eslHandler.ListByDateRange)
		r.Get("/unprinted", eslHandler.ListUnprinted)
		r.Post("/{objectID}/printed", eslHandler.MarkPrinted)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
