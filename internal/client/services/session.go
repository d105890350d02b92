package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// SessionVerifier checks that a session was issued by this process and has
// not been logged out.
type SessionVerifier interface {
	Verify(sess *models.Session) error
}

// SessionIssuer mints sessions signed with a per-process secret, so sessions
// never survive a restart.
type SessionIssuer struct {
	secret []byte
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]struct{}
}

func NewSessionIssuer() *SessionIssuer {
	return &SessionIssuer{
		secret:  common.GenerateRandByteArray(32),
		now:     time.Now,
		revoked: make(map[string]struct{}),
	}
}

// Issue creates a session for acc.
func (i *SessionIssuer) Issue(acc *models.Account) (*models.Session, error) {
	now := i.now()
	sid := uuid.NewString()

	claims := sessionClaims{
		AccountID: acc.ID,
		Username:  acc.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sid,
			Subject:  acc.Username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &models.Session{
		ID:        sid,
		AccountID: acc.ID,
		Username:  acc.Username,
		Token:     token,
		IssuedAt:  now,
	}, nil
}

// Verify returns common.ErrNoSession unless sess carries a token signed by
// i whose claims match the session fields and which was not revoked.
func (i *SessionIssuer) Verify(sess *models.Session) error {
	if !sess.Valid() {
		return common.ErrNoSession
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(sess.Token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNoSession, err)
	}
	if claims.ID != sess.ID || claims.AccountID != sess.AccountID || claims.Username != sess.Username {
		return common.ErrNoSession
	}

	i.mu.Lock()
	_, revoked := i.revoked[claims.ID]
	i.mu.Unlock()
	if revoked {
		return common.ErrNoSession
	}
	return nil
}

// Revoke invalidates the session with id sid.
func (i *SessionIssuer) Revoke(sid string) {
	if sid == "" {
		return
	}
	i.mu.Lock()
	i.revoked[sid] = struct{}{}
	i.mu.Unlock()
}
