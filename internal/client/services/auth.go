// Package services contains the FingerGate application services: password
// and biometric authentication, registration with mandatory enrollment,
// sessions, and the per-user data store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fingergate/internal/client/biometric"
	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/logging"
)

// AttemptState is the position of the current login or registration attempt.
type AttemptState int

const (
	StateIdle AttemptState = iota
	StateAwaitingInput
	StateVerifying
	StateChallengePending
	StateAuthenticated
	StateRejected
)

func (s AttemptState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateVerifying:
		return "verifying"
	case StateChallengePending:
		return "challenge_pending"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("AttemptState(%d)", int(s))
	}
}

// Challenger issues biometric challenges.
type Challenger interface {
	StartChallenge(ctx context.Context) (*biometric.Challenge, error)
}

// AuthService defines the authentication operations offered to the UI.
//
// Contract:
//   - Login: password factor. MissingFields, InvalidCredentials.
//   - LoginWithBiometric: biometric factor for an enrolled username.
//     MissingFields, BiometricUnavailable, BiometricFailed, NotEnrolled.
//   - ConfirmBiometricEnrollment: runs the enrollment challenge for the
//     current registration attempt. BiometricUnavailable, BiometricFailed.
//   - Register: creates an enrolled account. MissingFields,
//     EnrollmentRequired, DuplicateUsername.
//   - Logout: ends sess; it is cleared in place.
//   - ResetRegistration: abandons the registration attempt, its enrollment and
//     any pending enrollment challenge.
//
// Persistence failures surface as StorageUnavailable. A second challenge
// while one is pending fails with common.ErrChallengePending.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	LoginWithBiometric(ctx context.Context, username string) (*models.Session, error)
	ConfirmBiometricEnrollment(ctx context.Context) error
	EnrollmentConfirmed() bool
	Register(ctx context.Context, username string, password []byte) (*models.Session, error)
	Logout(sess *models.Session)
	ResetRegistration()
	State() AttemptState
	AccountCount(ctx context.Context) (int, error)
}

// authService is the concrete AuthService. It tracks a single attempt at a
// time, matching the one-user-at-a-time model of the UI.
type authService struct {
	creds    *CredentialStore
	adapter  Challenger
	sessions *SessionIssuer
	log      logging.Logger

	mu                  sync.Mutex
	state               AttemptState
	pending             *biometric.Challenge
	pendingEnrollment   bool
	enrollmentConfirmed bool
}

// NewAuthService constructs an AuthService.
func NewAuthService(creds *CredentialStore, adapter Challenger, sessions *SessionIssuer, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{creds: creds, adapter: adapter, sessions: sessions, log: log}
}

func (a *authService) setState(ctx context.Context, s AttemptState) {
	a.mu.Lock()
	prev := a.state
	a.state = s
	a.mu.Unlock()
	if prev != s {
		a.log.Debug(ctx, "attempt state", "from", prev, "to", s)
	}
}

func (a *authService) State() AttemptState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) EnrollmentConfirmed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enrollmentConfirmed
}

func (a *authService) reject(ctx context.Context, username string, err error) (*models.Session, error) {
	a.setState(ctx, StateRejected)
	a.log.Info(ctx, "attempt rejected", "username", username, "kind", common.KindOf(err))
	return nil, err
}

func (a *authService) authenticate(ctx context.Context, acc *models.Account, factor string) (*models.Session, error) {
	sess, err := a.sessions.Issue(acc)
	if err != nil {
		return a.reject(ctx, acc.Username, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err))
	}
	a.setState(ctx, StateAuthenticated)
	a.log.Info(ctx, "authenticated", "username", acc.Username, "account_id", acc.ID, "factor", factor)
	return sess, nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}

// Login authenticates username with password.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	username = strings.TrimSpace(username)
	a.setState(ctx, StateAwaitingInput)

	if err := validateCredentials(username, password); err != nil {
		return a.reject(ctx, username, err)
	}

	a.setState(ctx, StateVerifying)
	acc, err := a.creds.VerifyPassword(ctx, username, password)
	if errors.Is(err, common.ErrNotFound) {
		return a.reject(ctx, username, common.ErrInvalidCredentials)
	}
	if err != nil {
		a.log.Error(ctx, "verify password", "username", username, "err", err)
		return a.reject(ctx, username, storageErr(err))
	}
	return a.authenticate(ctx, acc, "password")
}

// runChallenge issues a challenge and waits for its outcome. Only one
// challenge may be outstanding at a time; enrollment marks it as owned by the
// registration attempt.
func (a *authService) runChallenge(ctx context.Context, enrollment bool) error {
	a.mu.Lock()
	if a.pending != nil {
		a.mu.Unlock()
		return common.ErrChallengePending
	}
	c, err := a.adapter.StartChallenge(ctx)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.pending = c
	a.pendingEnrollment = enrollment
	prev := a.state
	a.state = StateChallengePending
	a.mu.Unlock()
	a.log.Debug(ctx, "attempt state", "from", prev, "to", StateChallengePending)

	if err := c.Wait(ctx); err != nil && ctx.Err() != nil {
		// the challenge resolves even when the caller stops waiting
		c.Cancel()
	}

	a.mu.Lock()
	if a.pending == c {
		a.pending = nil
		a.pendingEnrollment = false
	}
	a.mu.Unlock()
	return c.Result()
}

// LoginWithBiometric authenticates username by a biometric challenge. The
// challenge proves only that an enrolled fingerprint matched on this device;
// the account is then looked up by username.
func (a *authService) LoginWithBiometric(ctx context.Context, username string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	a.setState(ctx, StateAwaitingInput)

	if err := validateUsername(username); err != nil {
		return a.reject(ctx, username, err)
	}

	if err := a.runChallenge(ctx, false); err != nil {
		return a.reject(ctx, username, err)
	}

	a.setState(ctx, StateVerifying)
	acc, err := a.creds.FindEnrolledAccount(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return a.reject(ctx, username, common.ErrNotEnrolled)
	}
	if err != nil {
		a.log.Error(ctx, "find enrolled account", "username", username, "err", err)
		return a.reject(ctx, username, storageErr(err))
	}
	return a.authenticate(ctx, acc, "biometric")
}

// ConfirmBiometricEnrollment runs the enrollment challenge. On success the
// current registration attempt may call Register once.
func (a *authService) ConfirmBiometricEnrollment(ctx context.Context) error {
	if err := a.runChallenge(ctx, true); err != nil {
		_, err = a.reject(ctx, "", err)
		return err
	}

	a.mu.Lock()
	a.enrollmentConfirmed = true
	a.state = StateAwaitingInput
	a.mu.Unlock()
	a.log.Info(ctx, "biometric enrollment confirmed")
	return nil
}

// takeEnrollment consumes the enrollment confirmation, reporting whether
// there was one.
func (a *authService) takeEnrollment() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	ok := a.enrollmentConfirmed
	a.enrollmentConfirmed = false
	return ok
}

func (a *authService) restoreEnrollment() {
	a.mu.Lock()
	a.enrollmentConfirmed = true
	a.mu.Unlock()
}

// Register creates an account for username. A confirmed enrollment is
// required and is consumed on success; a rejected registration keeps it.
func (a *authService) Register(ctx context.Context, username string, password []byte) (*models.Session, error) {
	username = strings.TrimSpace(username)
	a.setState(ctx, StateAwaitingInput)

	if err := validateCredentials(username, password); err != nil {
		return a.reject(ctx, username, err)
	}
	if !a.takeEnrollment() {
		return a.reject(ctx, username, common.ErrEnrollmentRequired)
	}

	a.setState(ctx, StateVerifying)
	acc, err := a.creds.CreateAccount(ctx, username, password, true)
	if err != nil {
		a.restoreEnrollment()
		if errors.Is(err, common.ErrDuplicateUsername) {
			return a.reject(ctx, username, common.ErrDuplicateUsername)
		}
		a.log.Error(ctx, "create account", "username", username, "err", err)
		return a.reject(ctx, username, storageErr(err))
	}

	a.log.Info(ctx, "account created", "username", acc.Username, "account_id", acc.ID)
	return a.authenticate(ctx, acc, "registration")
}

// Logout revokes and clears sess.
func (a *authService) Logout(sess *models.Session) {
	ctx := context.Background()
	if sess != nil {
		a.log.Info(ctx, "logout", "username", sess.Username, "account_id", sess.AccountID)
		a.sessions.Revoke(sess.ID)
		sess.Clear()
	}
	a.setState(ctx, StateIdle)
}

// ResetRegistration drops the enrollment confirmation and cancels a pending
// enrollment challenge. A pending login challenge is left alone.
func (a *authService) ResetRegistration() {
	a.mu.Lock()
	var pending *biometric.Challenge
	if a.pendingEnrollment {
		pending = a.pending
	}
	a.enrollmentConfirmed = false
	if a.pending == nil || a.pendingEnrollment {
		a.state = StateIdle
	}
	a.mu.Unlock()

	if pending != nil {
		pending.Cancel()
	}
}

func (a *authService) AccountCount(ctx context.Context) (int, error) {
	n, err := a.creds.Count(ctx)
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}
