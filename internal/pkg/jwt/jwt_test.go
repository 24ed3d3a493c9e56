package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestJWTService_AccessTokenClaims(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour, false)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestJWTService_ParseRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour, false)

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, refresh, other)
}

func TestJWTService_ParseRefreshToken_Rejects(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour, false)

	access, _, err := svc.GenerateAccessToken("user-1", "a@example.com", user.RoleStaff)
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not refresh")

	foreign := NewJWTService("another-secret", time.Hour, time.Hour, false)
	refresh, _, err := foreign.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(refresh)
	assert.Error(t, err, "signature from another key")

	expired := NewJWTService(testSecret, time.Hour, -time.Hour, false)
	old, _, err := expired.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(old)
	assert.Error(t, err, "expired token")

	_, err = svc.ParseRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, time.Hour, false)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}

func TestJWTService_RefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, time.Hour, true)
	expiresAt := time.Now().Add(time.Hour).Unix()

	cookie := svc.RefreshTokenCookie("tok", expiresAt)

	assert.Equal(t, RefreshCookieName, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, "/api/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, expiresAt, cookie.Expires.Unix())
}
