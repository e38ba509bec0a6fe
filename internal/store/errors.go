package store

import (
	"errors"
	"fmt"
)

// The closed error taxonomy shared by every backend. Contract operations
// return results carrying one of these kinds; none of them are recovered
// locally. Configuration failures (missing environment values, pool
// construction) are fatal startup errors and deliberately not part of
// this set.
var (
	// ErrBadURL is returned when the backend server URL cannot be parsed.
	ErrBadURL = errors.New("malformed server URL")

	// ErrTransport is returned when the underlying network call fails
	// before a response arrives: connection refused, timeout, DNS.
	ErrTransport = errors.New("transport failure")

	// ErrSerialization is returned when a payload cannot be encoded or
	// decoded as JSON, or when a timestamp bound is not in the
	// TimestampLayout format.
	ErrSerialization = errors.New("serialization failure")

	// ErrIO is returned for lower-level I/O failures not otherwise
	// classified, such as a response body that cannot be read.
	ErrIO = errors.New("i/o failure")

	// ErrPlatform is the kind wrapped by PlatformError: the remote object
	// store accepted the connection but rejected the request.
	ErrPlatform = errors.New("platform rejected request")

	// ErrDatabase is returned when the relational backend reports a
	// failure: constraint violation, connectivity loss, syntax or type
	// mismatch.
	ErrDatabase = errors.New("database failure")

	// ErrMissingIdentity is returned when an update is attempted on a
	// record that has no backend-assigned identity yet.
	ErrMissingIdentity = errors.New("esl has no objectId, save it first")

	// ErrIdentityAssigned is returned when a save is attempted on a
	// record that already carries a backend-assigned identity.
	ErrIdentityAssigned = errors.New("esl already has an objectId")
)

// PlatformError reports a request the remote object store rejected. Status
// is the HTTP status code of the response and Cause the server-supplied
// message, verbatim.
type PlatformError struct {
	Status int
	Cause  string
}

// Error implements the error interface for PlatformError.
func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform rejected request: status %d: %s", e.Status, e.Cause)
}

// Unwrap ties PlatformError into the taxonomy so that
// errors.Is(err, ErrPlatform) holds for every platform rejection.
func (e *PlatformError) Unwrap() error {
	return ErrPlatform
}

// AsPlatformError returns the PlatformError wrapped in err, if any.
func AsPlatformError(err error) (*PlatformError, bool) {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsIdentityError checks whether the error is one of the identity
// precondition failures rather than a backend fault.
func IsIdentityError(err error) bool {
	return errors.Is(err, ErrMissingIdentity) || errors.Is(err, ErrIdentityAssigned)
}
