package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, username, passwordHash string, biometricEnrolled bool) (*models.Account, error) {
	query :=
		`INSERT INTO users (username, password_hash, fingerprint_registered)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	a := &models.Account{Username: username, PasswordHash: passwordHash, BiometricEnrolled: biometricEnrolled}
	err := r.db.QueryRowContext(ctx, query, username, passwordHash, biometricEnrolled).Scan(&a.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, fingerprint_registered FROM users
		 WHERE username = $1
		 `
	return r.get(ctx, query, username)
}

func (r *PostgresRepository) GetEnrolled(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, fingerprint_registered FROM users
		 WHERE username = $1 AND fingerprint_registered
		 `
	return r.get(ctx, query, username)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) get(ctx context.Context, query, username string) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.BiometricEnrolled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
