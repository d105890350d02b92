package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"missing fields", ErrMissingFields, KindMissingFields},
		{"wrapped duplicate", fmt.Errorf("create: %w", ErrDuplicateUsername), KindDuplicateUsername},
		{"invalid credentials", ErrInvalidCredentials, KindInvalidCredentials},
		{"not enrolled", ErrNotEnrolled, KindNotEnrolled},
		{"enrollment required", ErrEnrollmentRequired, KindEnrollmentRequired},
		{"unavailable", ErrBiometricUnavailable, KindBiometricUnavailable},
		{"failed", fmt.Errorf("%w: timeout", ErrBiometricFailed), KindBiometricFailed},
		{"pending maps to failed", ErrChallengePending, KindBiometricFailed},
		{"empty content", ErrEmptyContent, KindEmptyContent},
		{"no session", ErrNoSession, KindNoSession},
		{"storage", fmt.Errorf("%w: disk full", ErrStorageUnavailable), KindStorageUnavailable},
		{"unknown", errors.New("boom"), KindStorageUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestKinds_Unique(t *testing.T) {
	seen := map[Kind]bool{}
	for _, k := range Kinds() {
		assert.False(t, seen[k], "duplicate kind %q", k)
		assert.NotEqual(t, KindNone, k)
		seen[k] = true
	}
}
