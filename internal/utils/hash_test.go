package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "SecurePass123"

func TestHashPassword_Success(t *testing.T) {
	// Act
	hash, err := HashPassword(testPassword, bcrypt.MinCost)

	// Assert
	require.NoError(t, err, "HashPassword should not fail for valid input")
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, testPassword, hash, "Hash must not equal the plaintext")
	assert.True(t, strings.HasPrefix(hash, "$2"), "Hash should be in bcrypt format")
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	// Two hashes of the same password must differ (fresh salt per call)
	hash1, err := HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	hash2, err := HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "Each hash should use a fresh salt")

	// Both still verify
	assert.True(t, VerifyPassword(testPassword, hash1))
	assert.True(t, VerifyPassword(testPassword, hash2))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	// Cost 0 falls back to the default cost
	hash, err := HashPassword(testPassword, 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost, "Zero cost should use the default")
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, VerifyPassword("WrongPass123", hash), "Wrong password should not verify")
	assert.False(t, VerifyPassword("", hash), "Empty password should not verify")
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword(testPassword, "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword(testPassword, ""))
}
