// Package domain defines the core business entities and errors.
package domain

import "errors"

// Esl validation errors.
var (
	// ErrEslTypeInvalid is returned when an ESL's device family is not one
	// of the known EslType constants.
	ErrEslTypeInvalid = errors.New("esl type is not a known device family")

	// ErrEslSerialEmpty is returned when an ESL's device serial is empty.
	ErrEslSerialEmpty = errors.New("esl serial cannot be empty")

	// ErrEslIDEmpty is returned when an ESL's label id is empty.
	ErrEslIDEmpty = errors.New("esl id cannot be empty")
)
