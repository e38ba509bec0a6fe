package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of every configuration environment variable,
// e.g. ESLTRACK_DATABASE_URL or ESLTRACK_PARSE_APPLICATION_ID.
const envPrefix = "ESLTRACK"

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Environment variables use the ESLTRACK_ prefix
// with underscores separating the group and key.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("store.backend", BackendPostgres)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_mins", 5)
	v.SetDefault("parse.collection", "GenericEsl")

	// Environment variables take precedence over defaults.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface nested keys through Unmarshal,
	// so bind each one explicitly.
	keys := []string{
		"server.port",
		"server.log_level",
		"store.backend",
		"database.url",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime_mins",
		"parse.application_id",
		"parse.api_key",
		"parse.server_url",
		"parse.collection",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// Backend-conditional requirements are clearer as explicit checks than
	// as cross-field validator tags.
	switch cfg.Store.Backend {
	case BackendPostgres:
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("store backend %q requires %s_DATABASE_URL", BackendPostgres, envPrefix)
		}
	case BackendParse:
		if cfg.Parse.ApplicationID == "" {
			return nil, fmt.Errorf("store backend %q requires %s_PARSE_APPLICATION_ID", BackendParse, envPrefix)
		}
		if cfg.Parse.ServerURL == "" {
			return nil, fmt.Errorf("store backend %q requires %s_PARSE_SERVER_URL", BackendParse, envPrefix)
		}
	}

	return &cfg, nil
}
