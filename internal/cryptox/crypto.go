// Package cryptox implements the one-way password digests stored in the
// credential table.
//
// Two formats are understood:
//
//	argon2id$<base64 salt>$<base64 key>   argon2id, random per-account salt
//	<64 hex chars>                        unsalted sha256 (legacy users.db rows)
//
// Both are deterministic: the same password and stored salt always produce the
// same digest, so verification recomputes and compares.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fingergate/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	HasherArgon2ID = "argon2id"
	HasherSHA256   = "sha256"

	saltSize = 16
)

// Hasher produces and checks password digests.
type Hasher interface {
	Name() string
	Hash(password []byte) (string, error)
	Verify(password []byte, digest string) bool
	// Recognizes reports whether digest is in this hasher's format.
	Recognizes(digest string) bool
}

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// Argon2Hasher stores argon2id keys with a random salt.
type Argon2Hasher struct{}

func (Argon2Hasher) Name() string { return HasherArgon2ID }

func (Argon2Hasher) Hash(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(saltSize)
	return encodeArgon2(salt, DeriveKey(password, salt)), nil
}

func (Argon2Hasher) Verify(password []byte, digest string) bool {
	salt, key, ok := decodeArgon2(digest)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(key, DeriveKey(password, salt)) == 1
}

func (Argon2Hasher) Recognizes(digest string) bool {
	_, _, ok := decodeArgon2(digest)
	return ok
}

func encodeArgon2(salt, key []byte) string {
	enc := base64.RawStdEncoding
	return HasherArgon2ID + "$" + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key)
}

func decodeArgon2(digest string) (salt, key []byte, ok bool) {
	parts := strings.Split(digest, "$")
	if len(parts) != 3 || parts[0] != HasherArgon2ID {
		return nil, nil, false
	}
	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	key, err = enc.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return nil, nil, false
	}
	return salt, key, true
}

// SHA256Hasher is the unsalted hex digest written by the legacy desktop
// application. Kept so existing users.db files still authenticate.
type SHA256Hasher struct{}

func (SHA256Hasher) Name() string { return HasherSHA256 }

func (SHA256Hasher) Hash(password []byte) (string, error) {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password []byte, digest string) bool {
	if !h.Recognizes(digest) {
		return false
	}
	candidate, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(strings.ToLower(digest))) == 1
}

func (SHA256Hasher) Recognizes(digest string) bool {
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}

// MultiHasher hashes new passwords with Primary and verifies any digest
// recognised by Primary or one of Fallbacks.
type MultiHasher struct {
	Primary   Hasher
	Fallbacks []Hasher
}

func (m MultiHasher) Name() string { return m.Primary.Name() }

func (m MultiHasher) Hash(password []byte) (string, error) {
	return m.Primary.Hash(password)
}

func (m MultiHasher) Verify(password []byte, digest string) bool {
	for _, h := range m.all() {
		if h.Recognizes(digest) {
			return h.Verify(password, digest)
		}
	}
	return false
}

func (m MultiHasher) Recognizes(digest string) bool {
	for _, h := range m.all() {
		if h.Recognizes(digest) {
			return true
		}
	}
	return false
}

func (m MultiHasher) all() []Hasher {
	return append([]Hasher{m.Primary}, m.Fallbacks...)
}

// NewHasher returns a MultiHasher whose primary format is name; the other
// known format stays verifiable.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HasherArgon2ID, "":
		return MultiHasher{Primary: Argon2Hasher{}, Fallbacks: []Hasher{SHA256Hasher{}}}, nil
	case HasherSHA256:
		return MultiHasher{Primary: SHA256Hasher{}, Fallbacks: []Hasher{Argon2Hasher{}}}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}
