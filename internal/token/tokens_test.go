package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	signed, err := Issue("alice", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(signed, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "newsstand", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := Issue("alice", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signed, err := Issue("alice", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(signed, "test-secret")
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not-a-token", "test-secret")
	assert.Error(t, err)
}
