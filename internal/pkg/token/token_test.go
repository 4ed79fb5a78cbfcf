package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	userId := uuid.New()

	signed, err := svc.Generate(userId, "ana", "ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userId, claims.UserId)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana@x.com", claims.Email)
}

func TestVerifyMissing(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	signed, err := svc.Generate(uuid.New(), "ana", "ana@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewService("secret-a", time.Hour).Generate(uuid.New(), "ana", "ana@x.com")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRefreshKeepsIdentity(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	userId := uuid.New()

	signed, err := svc.Generate(userId, "ana", "ana@x.com")
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(claims)
	require.NoError(t, err)

	claims2, err := svc.Verify(refreshed)
	require.NoError(t, err)
	assert.Equal(t, userId, claims2.UserId)
	assert.Equal(t, "ana@x.com", claims2.Email)
}
