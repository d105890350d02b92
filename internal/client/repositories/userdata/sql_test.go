package userdata

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE user_data (
  username TEXT PRIMARY KEY,
  account_id INTEGER NOT NULL,
  content TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_PutUpsertsAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Get(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.Put(ctx, &models.UserDataRecord{AccountID: 1, Username: "alice", Content: "v1"}))
	require.NoError(t, r.Put(ctx, &models.UserDataRecord{AccountID: 1, Username: "alice", Content: "v2"}))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.UserDataRecord{AccountID: 1, Username: "alice", Content: "v2"}, got)
}

func TestSQLite_MissingTableIsAnError(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)
	_, err = r.Get(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)
	assert.Error(t, r.Put(context.Background(), &models.UserDataRecord{Username: "alice"}))
}

func TestPostgres_Put(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRepository(db)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return now }

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+user_data.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\).*ON\s+CONFLICT\s*\(username\)\s+DO\s+UPDATE`).
		WithArgs("alice", int64(1), "hello", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Put(context.Background(), &models.UserDataRecord{AccountID: 1, Username: "alice", Content: "hello"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	r := NewPostgresRepository(db)

	q := `(?s)^SELECT\s+account_id,\s*username,\s*content\s+FROM\s+user_data\s+WHERE\s+username\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "content"}).AddRow(int64(1), "alice", "hi"))
	mock.ExpectQuery(q).WithArgs("bob").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs("carol").WillReturnError(errors.New("conn reset"))

	got, err := r.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)

	_, err = r.Get(context.Background(), "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = r.Get(context.Background(), "carol")
	assert.ErrorContains(t, err, "conn reset")
}
