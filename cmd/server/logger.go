package main

import (
	"log/slog"

	"github.com/bchastanier/esltrack/internal/config"
	"github.com/bchastanier/esltrack/internal/platform/logger"
)

// setupAppLogger configures the application logger from config settings and
// installs it as the process default.
func setupAppLogger(cfg *config.Config) *slog.Logger {
	return logger.Setup(cfg.Server)
}
