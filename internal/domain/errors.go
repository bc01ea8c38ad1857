package domain

import "errors"

var (
	// ErrInvalidValue is returned when an enum value cannot be parsed.
	ErrInvalidValue = errors.New("invalid value")

	// ErrValidation is returned when a user supplied input fails validation.
	ErrValidation = errors.New("validation failed")
)
