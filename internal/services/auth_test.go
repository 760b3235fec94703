package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	var h Hash

	hashed, err := h.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, h.VerifyPassword("correct horse battery staple", hashed))
	assert.False(t, h.VerifyPassword("wrong password", hashed))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	token, err := auth.CreateAccessToken("alice")
	require.NoError(t, err)

	username, err := auth.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenScopesAreNotInterchangeable(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	access, err := auth.CreateAccessToken("alice")
	require.NoError(t, err)
	email, err := auth.CreateEmailToken("alice@example.com")
	require.NoError(t, err)
	reset, err := auth.CreateResetToken("alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		verify func(string) (string, error)
		accept string
		reject []string
	}{
		{"access verifier", auth.VerifyAccessToken, access, []string{email, reset}},
		{"email verifier", auth.EmailFromToken, email, []string{access, reset}},
		{"reset verifier", auth.VerifyResetToken, reset, []string{access, email}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verify(tt.accept)
			assert.NoError(t, err)

			for _, token := range tt.reject {
				_, err := tt.verify(token)
				assert.ErrorIs(t, err, ErrInvalidToken)
			}
		})
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)
	other := NewAuthService("other-secret", time.Hour)

	token, err := auth.CreateAccessToken("alice")
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService("test-secret", -time.Minute)

	token, err := auth.CreateAccessToken("alice")
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := auth.VerifyAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
