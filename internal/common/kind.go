package common

import "errors"

// Kind is the user-facing category of a failure. Every error returned by the
// services maps to exactly one Kind.
type Kind string

const (
	KindNone                 Kind = ""
	KindMissingFields        Kind = "missing_fields"
	KindDuplicateUsername    Kind = "duplicate_username"
	KindInvalidCredentials   Kind = "invalid_credentials"
	KindNotEnrolled          Kind = "not_enrolled"
	KindEnrollmentRequired   Kind = "enrollment_required"
	KindBiometricUnavailable Kind = "biometric_unavailable"
	KindBiometricFailed      Kind = "biometric_failed"
	KindEmptyContent         Kind = "empty_content"
	KindStorageUnavailable   Kind = "storage_unavailable"
	KindNoSession            Kind = "no_session"
)

// kindTable is checked in order; the first match wins.
var kindTable = []struct {
	err  error
	kind Kind
}{
	{ErrMissingFields, KindMissingFields},
	{ErrDuplicateUsername, KindDuplicateUsername},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrNotEnrolled, KindNotEnrolled},
	{ErrEnrollmentRequired, KindEnrollmentRequired},
	{ErrBiometricUnavailable, KindBiometricUnavailable},
	{ErrBiometricFailed, KindBiometricFailed},
	{ErrChallengePending, KindBiometricFailed},
	{ErrEmptyContent, KindEmptyContent},
	{ErrNoSession, KindNoSession},
	{ErrStorageUnavailable, KindStorageUnavailable},
}

// KindOf classifies err. A nil error yields KindNone; an error that matches
// none of the known sentinels is treated as a storage failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kindTable {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindStorageUnavailable
}

// Kinds lists every failure kind, in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindMissingFields,
		KindDuplicateUsername,
		KindInvalidCredentials,
		KindNotEnrolled,
		KindEnrollmentRequired,
		KindBiometricUnavailable,
		KindBiometricFailed,
		KindEmptyContent,
		KindStorageUnavailable,
		KindNoSession,
	}
}
