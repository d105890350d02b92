// Package storage opens the account database and vends repositories bound
// to it, one implementation per supported driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fingergate/internal/client/migrations"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/userdata"
	"github.com/dmitrijs2005/fingergate/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// RepositoryManager vends repositories for a single SQL dialect.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	UserData(db dbx.DBTX) userdata.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3", migrations.DirSQLite)
}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) UserData(db dbx.DBTX) userdata.Repository {
	return userdata.NewSQLiteRepository(db)
}

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "pgx", migrations.DirPostgres)
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) UserData(db dbx.DBTX) userdata.Repository {
	return userdata.NewPostgresRepository(db)
}

// NewRepositoryManager returns the manager for driver ("sqlite" or
// "postgres") together with the database/sql driver name to open.
func NewRepositoryManager(driver string) (RepositoryManager, string, error) {
	switch driver {
	case "sqlite":
		return &SQLiteRepositoryManager{}, "sqlite", nil
	case "postgres":
		return &PostgresRepositoryManager{}, "pgx", nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects to dsn with driver and applies pending migrations.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	m, sqlDriver, err := NewRepositoryManager(driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}
