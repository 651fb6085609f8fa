package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("qwerty")
	require.NoError(t, err)
	assert.NotEqual(t, "qwerty", hash)

	assert.True(t, VerifyPassword(hash, "qwerty"))
	assert.False(t, VerifyPassword(hash, "qwerty1"))
	assert.False(t, VerifyPassword("not-a-hash", "qwerty"))
}
