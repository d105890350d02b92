// Package accounts implements the credential store: persistent accounts
// keyed by unique username.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
)

// Repository persists accounts.
//
// Create must be atomic with respect to username uniqueness: two concurrent
// calls for the same username yield exactly one account, the other call
// returns common.ErrDuplicateUsername. Lookups return common.ErrNotFound when
// no matching row exists.
type Repository interface {
	Create(ctx context.Context, username, passwordHash string, biometricEnrolled bool) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetEnrolled(ctx context.Context, username string) (*models.Account, error)
	Count(ctx context.Context) (int, error)
}
