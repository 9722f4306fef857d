package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
)

var (
	jwtService = NewJWTService("test-signing-key", "test-issuer")
	userID     = id.NewUserID()
	expiresIn  = time.Hour
)

func Test_GenerateAccessToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := jwtService.GenerateAccessToken(userID, "john@example.com", false, now, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(expiresIn), expiresAt, time.Second)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)

	parsed, err := claims.ParsedUserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func Test_GenerateAccessToken_Distinct(t *testing.T) {
	now := time.Now()
	first, _, err := jwtService.GenerateAccessToken(userID, "a@example.com", true, now, expiresIn)
	require.NoError(t, err)
	second, _, err := jwtService.GenerateAccessToken(userID, "a@example.com", true, now, expiresIn)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, _, err := jwtService.GenerateAccessToken(userID, "a@example.com", false, time.Now().Add(-2*time.Hour), expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("another-key", "test-issuer")
	token, _, err := other.GenerateAccessToken(userID, "a@example.com", false, time.Now(), expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_WithClock(t *testing.T) {
	issued := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc := NewJWTService("test-signing-key", "test-issuer", WithClock(func() time.Time {
		return issued.Add(30 * time.Minute)
	}))
	token, _, err := svc.GenerateAccessToken(userID, "a@example.com", false, issued, expiresIn)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.NoError(t, err)
}
