package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGravatarURL(t *testing.T) {
	// Hashes are of the lowercased, trimmed address.
	url := GravatarURL("  Alice@Example.COM ")
	assert.Equal(t,
		"https://www.gravatar.com/avatar/c160f8cc69a4f0bf2b0362752353d060", url)
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t))

	user := registerTestUser(t, users, "alice", "alice@example.com")
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.HashedPassword)
	assert.Equal(t, GravatarURL("alice@example.com"), user.Avatar)
	assert.False(t, user.Confirmed)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := users.Register(ctx, "alice2", "alice@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Register(ctx, "alice", "alice2@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t))
	registerTestUser(t, users, "alice", "alice@example.com")

	t.Run("unconfirmed email refused", func(t *testing.T) {
		_, err := users.Authenticate(ctx, "alice", "s3cret-pass")
		assert.ErrorIs(t, err, ErrEmailNotConfirmed)
	})

	require.NoError(t, users.ConfirmEmail(ctx, "alice@example.com"))

	t.Run("valid credentials", func(t *testing.T) {
		user, err := users.Authenticate(ctx, "alice", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.Confirmed)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := users.Authenticate(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := users.Authenticate(ctx, "bob", "s3cret-pass")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestUserServiceConfirmEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t))
	registerTestUser(t, users, "alice", "alice@example.com")

	require.NoError(t, users.ConfirmEmail(ctx, "alice@example.com"))

	user, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.Confirmed)

	assert.ErrorIs(t, users.ConfirmEmail(ctx, "nobody@example.com"), ErrNotFound)
}

func TestUserServiceUpdatePassword(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t))
	registerTestUser(t, users, "alice", "alice@example.com")
	require.NoError(t, users.ConfirmEmail(ctx, "alice@example.com"))

	require.NoError(t, users.UpdatePassword(ctx, "alice@example.com", "new-pass"))

	_, err := users.Authenticate(ctx, "alice", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = users.Authenticate(ctx, "alice", "new-pass")
	assert.NoError(t, err)

	assert.ErrorIs(t,
		users.UpdatePassword(ctx, "nobody@example.com", "new-pass"), ErrNotFound)
}

func TestUserServiceGetNotFound(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t))

	_, err := users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
