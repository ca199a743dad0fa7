package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", 42)
	require.NoError(t, err)

	userID, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", 42)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not-a-jwt")
	assert.Error(t, err)
}
