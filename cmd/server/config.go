package main

import (
	"fmt"
	"log/slog"

	"github.com/bchastanier/esltrack/internal/config"
)

// loadAppConfig loads the application configuration from environment variables.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Log presence, never values: the URL carries credentials.
	if cfg.Database.URL != "" {
		slog.Debug("database configuration", "url_present", true)
	}
	if cfg.Parse.ServerURL != "" {
		slog.Debug("object store configuration",
			"server_url", cfg.Parse.ServerURL,
			"api_key_present", cfg.Parse.APIKey != "")
	}

	return cfg, nil
}
