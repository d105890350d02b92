package models

import "time"

// Session is the authenticated identity produced by a successful login or
// registration. The zero value means nobody is logged in.
type Session struct {
	ID        string
	AccountID int64
	Username  string
	Token     string
	IssuedAt  time.Time
}

// Valid reports whether s carries an authenticated identity. It does not
// check the token signature.
func (s *Session) Valid() bool {
	return s != nil && s.AccountID != 0 && s.Username != "" && s.Token != ""
}

// Clear resets s to the logged-out state.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	*s = Session{}
}
