package cryptox

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")
	if bytes.Equal(DeriveKey(password, []byte("salt-1")), DeriveKey(password, []byte("salt-2"))) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h := Argon2Hasher{}

	digest, err := h.Hash([]byte("secret1"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(digest, "argon2id$"))
	require.NotContains(t, digest, "secret1")

	assert.True(t, h.Recognizes(digest))
	assert.True(t, h.Verify([]byte("secret1"), digest))
	assert.False(t, h.Verify([]byte("wrong"), digest))
}

func TestArgon2Hasher_RandomSaltPerHash(t *testing.T) {
	h := Argon2Hasher{}
	a, err := h.Hash([]byte("same"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify([]byte("same"), a))
	assert.True(t, h.Verify([]byte("same"), b))
}

func TestArgon2Hasher_RejectsMalformed(t *testing.T) {
	h := Argon2Hasher{}
	for _, d := range []string{"", "argon2id$", "argon2id$$", "argon2id$!!$AAAA", "bcrypt$abc$def", "argon2id$QUJD"} {
		assert.False(t, h.Recognizes(d), d)
		assert.False(t, h.Verify([]byte("x"), d), d)
	}
}

func TestSHA256Hasher_MatchesLegacyFormat(t *testing.T) {
	h := SHA256Hasher{}

	digest, err := h.Hash([]byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6", digest)

	assert.True(t, h.Verify([]byte("secret1"), digest))
	assert.True(t, h.Verify([]byte("secret1"), strings.ToUpper(digest)))
	assert.False(t, h.Verify([]byte("secret2"), digest))
	assert.False(t, h.Recognizes("argon2id$AAAA$BBBB"))
}

func TestMultiHasher_VerifiesBothFormats(t *testing.T) {
	h, err := NewHasher(HasherArgon2ID)
	require.NoError(t, err)
	assert.Equal(t, HasherArgon2ID, h.Name())

	fresh, err := h.Hash([]byte("pw"))
	require.NoError(t, err)
	assert.True(t, h.Verify([]byte("pw"), fresh))

	legacy, _ := SHA256Hasher{}.Hash([]byte("pw"))
	assert.True(t, h.Verify([]byte("pw"), legacy))
	assert.False(t, h.Verify([]byte("nope"), legacy))
	assert.False(t, h.Verify([]byte("pw"), "garbage"))
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher(HasherSHA256)
	require.NoError(t, err)
	assert.Equal(t, HasherSHA256, h.Name())

	def, err := NewHasher("")
	require.NoError(t, err)
	assert.Equal(t, HasherArgon2ID, def.Name())

	_, err = NewHasher("md5")
	require.Error(t, err)
}
