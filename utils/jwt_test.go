package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func signToken(t *testing.T, key []byte, ttl time.Duration, extra jwt.MapClaims) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "u1",
		"email": "john@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	token := signToken(t, secret, time.Hour, jwt.MapClaims{"role": "admin"})

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", ClaimString(claims, "sub"))
	assert.Equal(t, "admin", ClaimString(claims, "role"))
	assert.Equal(t, "", ClaimString(claims, "missing"))
}

func TestValidateTokenRejects(t *testing.T) {
	expired := signToken(t, secret, -time.Minute, nil)
	wrongKey := signToken(t, []byte("other"), time.Hour, nil)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{"expired": expired, "wrong key": wrongKey, "alg none": unsigned, "garbage": "abc"} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken(token, secret)
			assert.Error(t, err)
		})
	}
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
