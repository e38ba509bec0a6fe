package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/bchastanier/esltrack/internal/platform/postgres"
	"github.com/bchastanier/esltrack/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPgError builds a pgconn error with the given code for mapping tests.
func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "esl",
		ConstraintName: constraint,
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, m.err
}

func (m mockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.err
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{
			name: "unique violation",
			err:  newPgError("23505", "esl_objectId_key"),
		},
		{
			name: "not null violation",
			err:  newPgError("23502", ""),
		},
		{
			name: "no rows",
			err:  sql.ErrNoRows,
		},
		{
			name: "plain driver error",
			err:  errors.New("connection reset by peer"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := postgres.MapError(tt.err)

			require.Error(t, mapped)
			assert.ErrorIs(t, mapped, store.ErrDatabase,
				"every database failure must normalize to ErrDatabase")
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("preserves the postgres error code", func(t *testing.T) {
		t.Parallel()
		mapped := postgres.MapError(newPgError("23505", "esl_objectId_key"))
		assert.Contains(t, mapped.Error(), "23505")
		assert.Contains(t, mapped.Error(), "esl_objectId_key")
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505", "esl_objectId_key")))
	assert.True(t, postgres.IsUniqueViolation(
		fmt.Errorf("wrapped: %w", newPgError("23505", ""))))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23502", "")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("generic error")))
	assert.False(t, postgres.IsUniqueViolation(nil))
}

func TestIsNotNullViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsNotNullViolation(newPgError("23502", "")))
	assert.False(t, postgres.IsNotNullViolation(newPgError("23505", "")))
	assert.False(t, postgres.IsNotNullViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  sql.Result
		wantErr bool
	}{
		{
			name:    "one row affected",
			result:  mockResult{rowsAffected: 1},
			wantErr: false,
		},
		{
			name:    "zero rows affected",
			result:  mockResult{rowsAffected: 0},
			wantErr: true,
		},
		{
			name:    "rows affected unavailable",
			result:  mockResult{err: errors.New("driver does not support RowsAffected")},
			wantErr: true,
		},
		{
			name:    "nil result",
			result:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := postgres.CheckRowsAffected(tt.result, "b7d4c1ce-6a3f-4a52-9f0e-1d2c3b4a5e6f")
			if tt.wantErr {
				assert.ErrorIs(t, err, store.ErrDatabase)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
