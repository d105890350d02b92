// Package common defines the failure kinds shared by the FingerGate core and
// the helpers used to classify them. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors. Never surfaced past the service boundary.
	ErrNotFound = errors.New("not found")

	// Input validation.
	ErrMissingFields = errors.New("missing required fields")
	ErrEmptyContent  = errors.New("content is empty")

	// Account lifecycle.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Biometric factor.
	ErrNotEnrolled          = errors.New("no biometric enrolled for this user")
	ErrEnrollmentRequired   = errors.New("biometric enrollment required")
	ErrBiometricUnavailable = errors.New("biometric sensor unavailable")
	ErrBiometricFailed      = errors.New("biometric challenge failed")
	ErrChallengePending     = errors.New("biometric challenge already pending")

	// Persistence.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Session.
	ErrNoSession = errors.New("no active session")
)
