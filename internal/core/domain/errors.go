// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Schedule errors
	ErrScheduleUnavailable = errors.New("schedule unavailable")
	ErrMalformedWindow     = errors.New("malformed time window")

	// Facility errors
	ErrEmptyFacilityID   = errors.New("facility id cannot be empty")
	ErrInvalidFacilityID = errors.New("invalid facility id")
	ErrUnknownFacility   = errors.New("unknown facility")

	// Provider errors
	ErrProviderNotFound = errors.New("schedule provider not found")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
