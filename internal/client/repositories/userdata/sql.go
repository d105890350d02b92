package userdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/dbx"
)

// SQLRepository keeps records in the user_data table of the account
// database. A single upsert statement replaces the row.
type SQLRepository struct {
	db          dbx.DBTX
	selectQuery string
	upsertQuery string
	now         func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{
		db:          db,
		selectQuery: `SELECT account_id, username, content FROM user_data WHERE username = ?`,
		upsertQuery: `
		INSERT INTO user_data (username, account_id, content, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			account_id = excluded.account_id,
			content = excluded.content,
			updated_at = excluded.updated_at`,
		now: time.Now,
	}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{
		db:          db,
		selectQuery: `SELECT account_id, username, content FROM user_data WHERE username = $1`,
		upsertQuery: `
		INSERT INTO user_data (username, account_id, content, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at`,
		now: time.Now,
	}
}

func (r *SQLRepository) Get(ctx context.Context, username string) (*models.UserDataRecord, error) {
	var rec models.UserDataRecord
	err := r.db.QueryRowContext(ctx, r.selectQuery, username).Scan(&rec.AccountID, &rec.Username, &rec.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user data for %q: %w", username, err)
	}
	return &rec, nil
}

func (r *SQLRepository) Put(ctx context.Context, rec *models.UserDataRecord) error {
	_, err := r.db.ExecContext(ctx, r.upsertQuery, rec.Username, rec.AccountID, rec.Content, r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to put user data for %q: %w", rec.Username, err)
	}
	return nil
}
