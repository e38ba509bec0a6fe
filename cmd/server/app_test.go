package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bchastanier/esltrack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBackendConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		Store:  config.StoreConfig{Backend: config.BackendParse},
		Parse: config.ParseConfig{
			ApplicationID: "esl-app",
			ServerURL:     "https://parse.example.com/1",
			Collection:    "GenericEsl",
		},
	}
}

func TestNewApplicationParseBackend(t *testing.T) {
	t.Parallel()

	app, err := newApplication(context.Background(), parseBackendConfig(), slog.Default())

	require.NoError(t, err)
	require.NotNil(t, app.eslStore)
	assert.Nil(t, app.db, "the object store backend must not open a database pool")
}

func TestNewApplicationRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := parseBackendConfig()
	cfg.Store.Backend = "cassandra"

	app, err := newApplication(context.Background(), cfg, slog.Default())

	assert.Nil(t, app)
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestNewApplicationRejectsBadParseURL(t *testing.T) {
	t.Parallel()

	cfg := parseBackendConfig()
	cfg.Parse.ServerURL = "parse.example.com"

	app, err := newApplication(context.Background(), cfg, slog.Default())

	assert.Nil(t, app)
	assert.Error(t, err)
}

func TestRouterHealthEndpoint(t *testing.T) {
	t.Parallel()

	app, err := newApplication(context.Background(), parseBackendConfig(), slog.Default())
	require.NoError(t, err)

	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
