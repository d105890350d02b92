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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, username, passwordHash string, biometricEnrolled bool) (*models.Account, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, fingerprint_registered) VALUES (?, ?, ?)`,
		username, passwordHash, boolToInt(biometricEnrolled))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create account %q: %w", username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read account id: %w", err)
	}

	return &models.Account{
		ID:                id,
		Username:          username,
		PasswordHash:      passwordHash,
		BiometricEnrolled: biometricEnrolled,
	}, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.get(ctx, `
		SELECT id, username, password_hash, COALESCE(fingerprint_registered, 0)
		FROM users WHERE username = ?`, username)
}

func (r *SQLiteRepository) GetEnrolled(ctx context.Context, username string) (*models.Account, error) {
	return r.get(ctx, `
		SELECT id, username, password_hash, fingerprint_registered
		FROM users WHERE username = ? AND fingerprint_registered = 1`, username)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) get(ctx context.Context, query, username string) (*models.Account, error) {
	var (
		a        models.Account
		enrolled int64
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &enrolled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	a.BiometricEnrolled = enrolled != 0
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
