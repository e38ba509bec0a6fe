package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bchastanier/esltrack/internal/config"
	"github.com/bchastanier/esltrack/internal/platform/parse"
	"github.com/bchastanier/esltrack/internal/platform/postgres"
	"github.com/bchastanier/esltrack/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the object store backend is selected.
	db *sql.DB

	eslStore store.EslStore
}

// newApplication creates a new application instance with the store backend
// selected by configuration. Both backends satisfy the same contract, so
// everything above this point is backend-agnostic.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.eslStore = postgres.NewPostgresEslStore(db, logger)
		logger.Info("postgres esl store initialized")

	case config.BackendParse:
		client, err := parse.NewClient(parse.Config{
			ApplicationID: cfg.Parse.ApplicationID,
			APIKey:        cfg.Parse.APIKey,
			ServerURL:     cfg.Parse.ServerURL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize object store client: %w", err)
		}
		app.eslStore = parse.NewParseEslStore(client, cfg.Parse.Collection, logger)
		logger.Info("object store esl store initialized",
			"collection", cfg.Parse.Collection)

	default:
		// config.Load already rejects unknown backends; this guards wiring drift.
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
