package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", string(hash))
	assert.NoError(t, ComparePassword(hash, "secret1"))
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestComparePasswordMismatch(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.Error(t, ComparePassword(hash, "secret2"))
}
