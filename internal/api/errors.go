package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bchastanier/esltrack/internal/api/shared"
	"github.com/bchastanier/esltrack/internal/domain"
	"github.com/bchastanier/esltrack/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Caller mistakes: invalid record data or lifecycle misuse
	case errors.Is(err, domain.ErrEslTypeInvalid),
		errors.Is(err, domain.ErrEslSerialEmpty),
		errors.Is(err, domain.ErrEslIDEmpty),
		errors.Is(err, store.ErrMissingIdentity),
		errors.Is(err, store.ErrIdentityAssigned),
		errors.Is(err, store.ErrSerialization):
		return http.StatusBadRequest

	// Upstream failures: the backend refused or was unreachable
	case errors.Is(err, store.ErrPlatform),
		errors.Is(err, store.ErrTransport),
		errors.Is(err, store.ErrBadURL):
		return http.StatusBadGateway

	// Default: internal server error (ErrDatabase, ErrIO, unknowns)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrEslTypeInvalid):
		return "Invalid esl type"

	case errors.Is(err, domain.ErrEslSerialEmpty):
		return "Serial is required"

	case errors.Is(err, domain.ErrEslIDEmpty):
		return "Esl ID is required"

	case errors.Is(err, store.ErrMissingIdentity):
		return "Record has not been saved yet"

	case errors.Is(err, store.ErrIdentityAssigned):
		return "Record has already been saved"

	case errors.Is(err, store.ErrSerialization):
		return "Malformed payload or timestamp"

	case errors.Is(err, store.ErrPlatform):
		if pe, ok := store.AsPlatformError(err); ok {
			return fmt.Sprintf("Backend rejected the request (status %d)", pe.Status)
		}
		return "Backend rejected the request"

	case errors.Is(err, store.ErrTransport),
		errors.Is(err, store.ErrBadURL):
		return "Backend is unreachable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleStoreError writes an error response for a failed store operation,
// deriving the status code and a safe message from the error type. A non-empty
// fallbackMessage overrides the generic 500 message.
func HandleStoreError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if statusCode == http.StatusInternalServerError && fallbackMessage != "" {
		safeMessage = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'CreateEslRequest.Serial' Error:Field validation for 'Serial' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
