package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signed(t, jwt.RegisteredClaims{
		Subject:   "209",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_ExpiredTokenStillReadable(t *testing.T) {
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	token := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_NoExpiry(t *testing.T) {
	_, ok := TokenExpiry(signed(t, jwt.RegisteredClaims{Subject: "209"}))
	assert.False(t, ok)

	_, ok = TokenExpiry("opaque-session-token")
	assert.False(t, ok)
}
