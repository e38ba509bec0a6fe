package store

import (
	"context"

	"github.com/bchastanier/esltrack/internal/domain"
)

// EslStore defines the interface for ESL record persistence.
//
// Two implementations exist: a Parse-Platform-style object store over
// HTTP+JSON (internal/platform/parse) and a PostgreSQL backend over a
// pooled connection (internal/platform/postgres). Which one backs a caller
// is decided at construction time; both normalize their failures into the
// error taxonomy defined in this package.
//
// All methods are safe for concurrent use. Operations never retry on their
// own; retry policy belongs to the caller.
type EslStore interface {
	// Save persists a new record. The record must validate and must not
	// have an identity yet (ErrIdentityAssigned otherwise); a successful
	// save is the only operation permitted to assign one. Returns a copy
	// of the record with ObjectID and CreatedAt populated by the backend.
	Save(ctx context.Context, esl *domain.Esl) (*domain.Esl, error)

	// FindUnprintedBySerial returns every record for the given device
	// serial that has not been printed yet. Printed records are never
	// included. The result is an empty slice, not nil, when nothing
	// matches.
	FindUnprintedBySerial(ctx context.Context, serial string) ([]*domain.Esl, error)

	// MarkPrinted flips the record's printed flag to true on the backend
	// and returns a copy with Printed set. Fails with ErrMissingIdentity,
	// without touching the backend, when the record has no identity.
	// Flipping an already printed record again is not an error.
	MarkPrinted(ctx context.Context, esl *domain.Esl) (*domain.Esl, error)

	// FindByDateRange returns printed and unprinted records for the serial
	// whose creation timestamp lies strictly between start and end. Both
	// bounds are exclusive: a record created exactly at start or end is
	// not returned. The bounds are strings in the TimestampLayout format;
	// a malformed bound fails with ErrSerialization before any backend
	// round trip.
	FindByDateRange(ctx context.Context, serial, start, end string) ([]*domain.Esl, error)
}
