package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bchastanier/esltrack/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// MapError folds a database error into the store error taxonomy. The
// Postgres error code and constraint name are preserved in the wrap text so
// operators can still tell a unique violation from a connectivity loss,
// while callers only ever match on store.ErrDatabase.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.ConstraintName != "" {
			return fmt.Errorf("%w: %s (%s): %v",
				store.ErrDatabase, pgErr.Code, pgErr.ConstraintName, err)
		}
		return fmt.Errorf("%w: %s: %v", store.ErrDatabase, pgErr.Code, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: no rows: %v", store.ErrDatabase, err)
	}

	return fmt.Errorf("%w: %v", store.ErrDatabase, err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate objectId.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsNotNullViolation checks if the given error is a PostgreSQL not null
// constraint violation.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// CheckRowsAffected examines the number of rows affected by a write. Zero
// affected rows on an update means the identity does not exist on the
// backend, which surfaces as a database failure to the caller.
func CheckRowsAffected(result sql.Result, objectID string) error {
	if result == nil {
		return fmt.Errorf("%w: nil result", store.ErrDatabase)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %v", store.ErrDatabase, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: no esl row with objectId %s", store.ErrDatabase, objectID)
	}

	return nil
}
