package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	salt, digest, ok := strings.Cut(hash, ":")
	require.True(t, ok, "hash should be salt:hash")
	assert.Len(t, salt, 32)    // 16 bytes hex encoded
	assert.Len(t, digest, 128) // 64 bytes hex encoded
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("password123")
	require.NoError(t, err)
	h2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same password should hash differently per salt")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("password124", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_MalformedStored(t *testing.T) {
	assert.False(t, CheckPassword("password123", "not-a-hash"))
	assert.False(t, CheckPassword("password123", "deadbeef:zzzz"))
	assert.False(t, CheckPassword("password123", ""))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@x.com", "bob.smith+tag@example.co.uk", "a_b@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{"", "alice", "alice@", "@x.com", "alice@x", "alice @x.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "expected %q to be invalid", email)
	}
}
