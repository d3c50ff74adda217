package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyAPIKey(t *testing.T) {
	hash, err := HashAPIKey("super-secret-key")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyAPIKey("super-secret-key", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyAPIKey("wrong-key", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyAPIKeyRejectsMalformedHash(t *testing.T) {
	_, err := VerifyAPIKey("whatever", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyAPIKey("whatever", "$bcrypt$x$y$z$w")
	assert.Error(t, err)
}

func TestHashAPIKeyIsSalted(t *testing.T) {
	first, err := HashAPIKey("same-key")
	require.NoError(t, err)
	second, err := HashAPIKey("same-key")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
