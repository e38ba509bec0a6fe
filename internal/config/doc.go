// Package config loads and validates the application configuration from
// environment variables. It carries the inputs of the persistence layer
// (backend selection, database pool parameters, object store credentials)
// but contains no persistence logic itself; a configuration failure is a
// fatal startup error, not part of the store error taxonomy.
package config
