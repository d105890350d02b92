// Package models defines the data types shared by FingerGate's stores,
// services and CLI.
package models

// Account is a registered local user.
type Account struct {
	// ID is assigned by the store on creation and never reused.
	ID int64

	// Username is unique across all accounts, compared exactly.
	Username string

	// PasswordHash is the stored digest; the plaintext is never persisted.
	PasswordHash string

	// BiometricEnrolled reports whether a biometric challenge succeeded
	// during registration.
	BiometricEnrolled bool
}
