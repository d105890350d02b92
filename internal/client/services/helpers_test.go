package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fingergate/internal/client/biometric"
	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/userdata"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/cryptox"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  password_hash TEXT NOT NULL,
  fingerprint_registered INTEGER DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

// stubSensor is a scripted biometric sensor. When gate is set, scans block
// until it is closed.
type stubSensor struct {
	mu        sync.Mutex
	available bool
	scanErr   error
	gate      chan struct{}
}

func (s *stubSensor) set(available bool, scanErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available, s.scanErr = available, scanErr
}

func (s *stubSensor) Probe(context.Context) biometric.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.available {
		return biometric.Available
	}
	return biometric.Unavailable
}

func (s *stubSensor) Scan(ctx context.Context) error {
	s.mu.Lock()
	gate, err := s.gate, s.scanErr
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

type testEnv struct {
	db     *sql.DB
	repo   accounts.Repository
	creds  *CredentialStore
	sensor *stubSensor
	issuer *SessionIssuer
	auth   AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupDB(t)
	hasher, err := cryptox.NewHasher(cryptox.HasherSHA256)
	require.NoError(t, err)

	repo := accounts.NewSQLiteRepository(db)
	creds := NewCredentialStore(repo, hasher)
	sensor := &stubSensor{available: true}
	issuer := NewSessionIssuer()
	adapter := biometric.NewAdapter(sensor, time.Second, nil)

	return &testEnv{
		db:     db,
		repo:   repo,
		creds:  creds,
		sensor: sensor,
		issuer: issuer,
		auth:   NewAuthService(creds, adapter, issuer, nil),
	}
}

// register enrolls and registers username, failing the test on error.
func (e *testEnv) register(t *testing.T, username, password string) *models.Session {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.auth.ConfirmBiometricEnrollment(ctx))
	sess, err := e.auth.Register(ctx, username, []byte(password))
	require.NoError(t, err)
	return sess
}

// memUserData is an in-memory userdata.Repository with injectable errors.
type memUserData struct {
	mu      sync.Mutex
	records map[string]models.UserDataRecord
	getErr  error
	putErr  error
}

func newMemUserData() *memUserData {
	return &memUserData{records: map[string]models.UserDataRecord{}}
}

var _ userdata.Repository = (*memUserData)(nil)

func (m *memUserData) Get(ctx context.Context, username string) (*models.UserDataRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.records[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &rec, nil
}

func (m *memUserData) Put(ctx context.Context, rec *models.UserDataRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.records[rec.Username] = *rec
	return nil
}
