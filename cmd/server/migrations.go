package main

import (
	"fmt"
	"log/slog"

	"github.com/bchastanier/esltrack/internal/config"
	"github.com/bchastanier/esltrack/migrations"
)

// handleMigrations executes a database migration command against the
// configured database. It's called from run() when the -migrate flag is set.
func handleMigrations(cfg *config.Config, logger *slog.Logger, migrateCmd string) error {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("failed to close database after migrations", "error", closeErr)
		}
	}()

	slog.Info("executing migrations", "command", migrateCmd)

	switch migrateCmd {
	case "up":
		return migrations.Up(db)
	case "down":
		return migrations.Down(db)
	case "status":
		return migrations.Status(db)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", migrateCmd)
	}
}
