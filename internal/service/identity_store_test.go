package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
		MinPasswordLength:     8,
	}
}

func newTestIdentityStore(t *testing.T, dir string, role domain.Role) *IdentityStore {
	t.Helper()

	reg := codec.NewRegistry()
	repository.RegisterSerializers(reg)

	store, err := NewIdentityStore(role, testAuthConfig(), IdentityDependencies{
		AccountRepo: repository.NewAccountRepository(dir, role, reg),
		AuditRepo:   repository.NewAuditRepository(dir, role, reg),
	}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestRegisterAndLogin(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	account, err := store.Register("alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, account.Role)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.NotEqual(t, "correct horse", account.PasswordHash)

	logged, err := store.Login("alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, account.ID, logged.ID)
}

func TestRegisterValidation(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	_, err := store.Register("not an email", "X", "long enough")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = store.Register("x@example.com", "X", "short")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = store.Register("x@example.com", "X", "long enough")
	require.NoError(t, err)

	_, err = store.Register("x@example.com", "Other X", "another password")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSameEmailAcrossRolesIsAllowed(t *testing.T) {
	dir := t.TempDir()
	customers := newTestIdentityStore(t, dir, domain.RoleCustomer)
	sellers := newTestIdentityStore(t, dir, domain.RoleSeller)

	_, err := customers.Register("dual@example.com", "As Customer", "password-1")
	require.NoError(t, err)

	_, err = sellers.Register("dual@example.com", "As Seller", "password-2")
	require.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	_, err := store.Register("alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)

	_, unknownErr := store.Login("nobody@example.com", "whatever pw")
	_, wrongErr := store.Login("alice@example.com", "wrong password")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestChangePassword(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	account, err := store.Register("alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)

	err = store.ChangePassword(account.ID, "wrong old", "brand new pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = store.ChangePassword(account.ID, "correct horse", "correct horse")
	require.ErrorIs(t, err, ErrPasswordUnchanged)

	err = store.ChangePassword(account.ID, "correct horse", "tiny")
	require.ErrorIs(t, err, ErrWeakPassword)

	err = store.ChangePassword(account.ID, "correct horse", "brand new pw")
	require.NoError(t, err)

	_, err = store.Login("alice@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Login("alice@example.com", "brand new pw")
	require.NoError(t, err)
}

func TestChangeEmail(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	alice, err := store.Register("alice@example.com", "Alice", "password-1")
	require.NoError(t, err)
	_, err = store.Register("bob@example.com", "Bob", "password-2")
	require.NoError(t, err)

	err = store.ChangeEmail(alice.ID, "bob@example.com")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	err = store.ChangeEmail(alice.ID, "not an email")
	require.ErrorIs(t, err, ErrInvalidEmail)

	// Re-submitting the current address is not a conflict with yourself.
	err = store.ChangeEmail(alice.ID, "alice@example.com")
	require.NoError(t, err)

	err = store.ChangeEmail(alice.ID, "alice+new@example.com")
	require.NoError(t, err)

	updated, ok := store.GetByID(alice.ID)
	require.True(t, ok)
	assert.Equal(t, "alice+new@example.com", updated.Email)
}

func TestChangeDisplayNameRecordsPreviousValue(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	account, err := store.Register("alice@example.com", "Alice", "password-1")
	require.NoError(t, err)

	require.NoError(t, store.ChangeDisplayName(account.ID, "Alice B."))

	log := store.AuditLog()
	require.NotEmpty(t, log)
	last := log[len(log)-1]
	assert.Equal(t, domain.AuditChangeDisplayName, last.Kind)
	assert.Equal(t, "Alice", last.Payload)
	assert.Equal(t, account.ID, last.AccountID)
}

func TestDelete(t *testing.T) {
	store := newTestIdentityStore(t, t.TempDir(), domain.RoleCustomer)

	account, err := store.Register("alice@example.com", "Alice", "password-1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(account.ID))
	_, ok := store.GetByID(account.ID)
	assert.False(t, ok)

	// Deleting an absent account is a no-op.
	require.NoError(t, store.Delete(account.ID))
}

func TestIdentityStoreReload(t *testing.T) {
	dir := t.TempDir()

	first := newTestIdentityStore(t, dir, domain.RoleSeller)
	account, err := first.Register("shop@example.com", "Shop", "password-1")
	require.NoError(t, err)
	_, err = first.Login("shop@example.com", "password-1")
	require.NoError(t, err)

	second := newTestIdentityStore(t, dir, domain.RoleSeller)

	reloaded, ok := second.GetByID(account.ID)
	require.True(t, ok)
	assert.Equal(t, "shop@example.com", reloaded.Email)

	_, err = second.Login("shop@example.com", "password-1")
	require.NoError(t, err)

	kinds := make([]domain.AuditKind, 0)
	for _, entry := range second.AuditLog() {
		kinds = append(kinds, entry.Kind)
	}
	assert.Equal(t, []domain.AuditKind{domain.AuditRegister, domain.AuditLogin, domain.AuditLogin}, kinds)
}
