// Package main implements the entry point for the esltrack server, which
// tracks the lifecycle of electronic shelf label price-tag records across
// interchangeable persistence backends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/bchastanier/esltrack/internal/config"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run database migrations instead of the server: up, down or status")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("esltrack: %v", err)
	}
}

// run loads configuration, wires the application and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupAppLogger(cfg)

	if migrateCmd != "" {
		if cfg.Store.Backend != config.BackendPostgres {
			return fmt.Errorf("migrations require the postgres backend, got %q", cfg.Store.Backend)
		}
		return handleMigrations(cfg, logger, migrateCmd)
	}

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", cfg.Store.Backend)

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		app.cleanup()
		return err
	}
	return nil
}
