package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("секретный-пароль", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "секретный-пароль", hash)
	assert.True(t, VerifyPassword(hash, "секретный-пароль"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("plaintext", "plaintext"), "stored plaintext must never verify")
}

func TestCheckPasswordPolicy(t *testing.T) {
	assert.ErrorIs(t, CheckPasswordPolicy("short"), ErrWeakPassword)
	assert.NoError(t, CheckPasswordPolicy("пароль12"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "4f0c-uuid", "ADMIN", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

	c, err := ParseAccessToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, Claims{Subject: "4f0c-uuid", Role: "ADMIN"}, c)

	_, err = ParseAccessToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsExpiredAndIncomplete(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "x", "role": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	s, err := expired.SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = ParseAccessToken("k", s)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "x", "exp": time.Now().Add(time.Minute).Unix(),
	})
	s, err = noRole.SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = ParseAccessToken("k", s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	h := HashRefreshRaw(rt.Raw)
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashRefreshRaw(rt.Raw))
}
