package auth_test

import (
	"context"
	"testing"

	auth "github.com/goliatone/go-credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) (*auth.UserProvider, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	provider := auth.NewUserProvider(store).
		WithLogger(noopLogger{}).
		WithPasswordAuthenticator(auth.NewPasswordHasher(4))
	return provider, store
}

func registerTestUser(t *testing.T, provider *auth.UserProvider, email, password string) *auth.User {
	t.Helper()
	user, err := provider.RegisterUser(context.Background(), auth.SignUpPayload{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestUserProvider_RegisterUser(t *testing.T) {
	provider, store := newTestProvider(t)

	user := registerTestUser(t, provider, "user@example.com", "hunter2")

	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "user", user.Username, "username derives from the email local part")
	assert.Equal(t, auth.RoleRegular, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "hunter2", user.PasswordHash, "plaintext never reaches the store")
	assert.NoError(t, auth.ComparePasswordAndHash("hunter2", user.PasswordHash))
	assert.Equal(t, 1, store.count())
}

func TestUserProvider_RegisterUser_Conflict(t *testing.T) {
	provider, store := newTestProvider(t)

	registerTestUser(t, provider, "user@example.com", "hunter2")

	_, err := provider.RegisterUser(context.Background(), auth.SignUpPayload{
		Email:    "user@example.com",
		Password: "different-password",
	})
	assert.ErrorIs(t, err, auth.ErrEmailConflict)
	assert.Equal(t, 1, store.count(), "failed registration creates nothing")
}

func TestUserProvider_RegisterUser_ExplicitUsername(t *testing.T) {
	provider, _ := newTestProvider(t)

	user, err := provider.RegisterUser(context.Background(), auth.SignUpPayload{
		Email:    "user@example.com",
		Username: "custom-handle",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "custom-handle", user.Username)
}

func TestUserProvider_VerifyIdentity(t *testing.T) {
	provider, _ := newTestProvider(t)
	registerTestUser(t, provider, "user@example.com", "hunter2")

	t.Run("valid credentials return an identity", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(context.Background(), "user@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", identity.Email())
		assert.Equal(t, "regular", identity.Role())
		assert.NotEmpty(t, identity.ID())
	})

	t.Run("username works as identifier", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(context.Background(), "user", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", identity.Email())
	})

	t.Run("unknown identifier and wrong password are indistinguishable", func(t *testing.T) {
		_, unknownErr := provider.VerifyIdentity(context.Background(), "nobody@example.com", "hunter2")
		_, mismatchErr := provider.VerifyIdentity(context.Background(), "user@example.com", "wrong-password")

		assert.ErrorIs(t, unknownErr, auth.ErrMismatchedHashAndPassword)
		assert.ErrorIs(t, mismatchErr, auth.ErrMismatchedHashAndPassword)
		assert.Equal(t, unknownErr.Error(), mismatchErr.Error())
	})
}

func TestUserProvider_VerifyIdentity_ValidatorRejects(t *testing.T) {
	provider, _ := newTestProvider(t)
	registerTestUser(t, provider, "user@example.com", "hunter2")

	provider.Validator = func(u *auth.User) error {
		return auth.ErrIdentityNotFound
	}

	_, err := provider.VerifyIdentity(context.Background(), "user@example.com", "hunter2")
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
}

func TestUserProvider_FindIdentityByIdentifier(t *testing.T) {
	provider, _ := newTestProvider(t)
	created := registerTestUser(t, provider, "user@example.com", "hunter2")

	identity, err := provider.FindIdentityByIdentifier(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), identity.ID())

	_, err = provider.FindIdentityByIdentifier(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
}
