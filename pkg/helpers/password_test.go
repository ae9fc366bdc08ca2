package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("P@ssw0rd")
	require.NoError(t, err)
	require.NotEqual(t, "P@ssw0rd", hash)

	assert.True(t, CompareHashAndPassword(hash, "P@ssw0rd"))
	assert.False(t, CompareHashAndPassword(hash, "p@ssw0rd"))
	assert.False(t, CompareHashAndPassword(hash, ""))
}

func TestCompareHashAndPassword_InvalidHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "whatever"))
}
