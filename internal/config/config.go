package config

// Backend names accepted by StoreConfig.Backend.
const (
	// BackendPostgres selects the relational backend.
	BackendPostgres = "postgres"

	// BackendParse selects the Parse-style object store backend.
	BackendParse = "parse"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Parse    ParseConfig    `mapstructure:"parse"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects which persistence backend serves the contract.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres parse"`
}

// DatabaseConfig contains the relational backend settings. URL is required
// only when the postgres backend is selected; Load enforces that.
type DatabaseConfig struct {
	URL                 string `mapstructure:"url" validate:"omitempty,url"`
	MaxOpenConns        int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns        int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMins int    `mapstructure:"conn_max_lifetime_mins" validate:"gte=1"`
}

// ParseConfig contains the object store backend settings. ApplicationID and
// ServerURL are required only when the parse backend is selected; the API
// key is always optional.
type ParseConfig struct {
	ApplicationID string `mapstructure:"application_id"`
	APIKey        string `mapstructure:"api_key"`
	ServerURL     string `mapstructure:"server_url" validate:"omitempty,url"`
	Collection    string `mapstructure:"collection"`
}
