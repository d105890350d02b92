package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/cryptox"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// credentialForm is the submitted username/password pair.
type credentialForm struct {
	Username string `validate:"required"`
	Password []byte `validate:"required,min=1"`
}

func validateCredentials(username string, password []byte) error {
	if err := validate.Struct(credentialForm{Username: username, Password: password}); err != nil {
		return common.ErrMissingFields
	}
	return nil
}

func validateUsername(username string) error {
	if err := validate.Var(username, "required"); err != nil {
		return common.ErrMissingFields
	}
	return nil
}

// CredentialStore combines the account repository with a password hasher.
type CredentialStore struct {
	repo   accounts.Repository
	hasher cryptox.Hasher
}

func NewCredentialStore(repo accounts.Repository, hasher cryptox.Hasher) *CredentialStore {
	return &CredentialStore{repo: repo, hasher: hasher}
}

// CreateAccount hashes password and persists a new account. It returns
// common.ErrDuplicateUsername if username is taken.
func (s *CredentialStore) CreateAccount(ctx context.Context, username string, password []byte, biometricEnrolled bool) (*models.Account, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, username, digest, biometricEnrolled)
}

// VerifyPassword returns the account when password matches its stored
// digest. An unknown username and a wrong password both yield
// common.ErrNotFound.
func (s *CredentialStore) VerifyPassword(ctx context.Context, username string, password []byte) (*models.Account, error) {
	acc, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		// miss and mismatch take comparable time
		_, _ = s.hasher.Hash(password)
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, acc.PasswordHash) {
		return nil, common.ErrNotFound
	}
	return acc, nil
}

// FindEnrolledAccount returns the account only if it has a biometric
// enrollment.
func (s *CredentialStore) FindEnrolledAccount(ctx context.Context, username string) (*models.Account, error) {
	return s.repo.GetEnrolled(ctx, username)
}

// Count returns the number of stored accounts.
func (s *CredentialStore) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
