package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token, expiresAt, err := GenerateJWT("user-1", "secret", "invoice-generator-app", now, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "invoice-generator-app", claims.Issuer)
}

func TestParseJWT_Rejects(t *testing.T) {
	valid, _, err := GenerateJWT("user-1", "secret", "iss", time.Now(), time.Hour)
	require.NoError(t, err)
	expired, _, err := GenerateJWT("user-1", "secret", "iss", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	noSubject, _, err := GenerateJWT("", "secret", "iss", time.Now(), time.Hour)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		is     error
	}{
		{"wrong secret", valid, "other", jwt.ErrSignatureInvalid},
		{"expired", expired, "secret", jwt.ErrTokenExpired},
		{"no subject", noSubject, "secret", nil},
		{"none algorithm", unsigned, "secret", nil},
		{"garbage", "not-a-token", "secret", jwt.ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndValidateJWT(tt.token, tt.secret)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	_, err = HashPassword(string(make([]byte, 73)))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}
