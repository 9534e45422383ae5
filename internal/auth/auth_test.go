package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront-service/internal/domain"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"alice+tag@example.co.uk",
		"o'brien@example.com",
		"x_y-z@sub.domain",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two words@example.com",
		"@example.com",
		"alice@",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, StrongPassword("12345678", 8))
	assert.False(t, StrongPassword("1234567", 8))
	assert.True(t, StrongPassword("x", 1))
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, ComparePassword(hash, "correct horse"))
	require.Error(t, ComparePassword(hash, "wrong password"))
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	accountID := uuid.New()

	token, expiresAt, err := tm.GenerateToken(accountID, domain.RoleSeller)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), claims.AccountID)
	assert.Equal(t, domain.RoleSeller, claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issued, _, err := NewTokenManager("secret-one", 60).GenerateToken(uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-two", 60).ParseToken(issued)
	require.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	_, err := tm.ParseToken("not.a.token")
	require.Error(t, err)
}
