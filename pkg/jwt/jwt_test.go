package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayanm085/shopnex-api/pkg/jwt"
)

const (
	secret = "unit-test-secret"
	issuer = "shopnex-test"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "alice", "manager", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)

	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "manager", role)
}

func TestExpiredTokenFailsParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "alice", "admin", issuer, -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestWrongSecretFailsParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "alice", "admin", issuer, 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err)
}

func TestGarbageTokenFailsParse(t *testing.T) {
	_, _, _, err := jwt.Parse(secret, "not.a.jwt")
	assert.Error(t, err)
}
