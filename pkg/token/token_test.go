package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("secret")

func TestAccessToken(t *testing.T) {
	tok, err := GenerateAccessToken(42, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(tok, secret)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestAccessTokenRejected(t *testing.T) {
	tok, err := GenerateAccessToken(42, secret, time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tok, []byte("other"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateAccessToken(42, secret, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(expired, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyToken("garbage", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)

	hash := HashRefreshToken(tok)
	assert.Len(t, hash, 64)
	assert.True(t, VerifyRefreshToken(tok, hash))
	assert.False(t, VerifyRefreshToken(other, hash))
}
