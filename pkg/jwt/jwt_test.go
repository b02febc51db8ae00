package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, 42, RoleSeller, "licoreria-test", 60)
	require.NoError(t, err)

	userID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, RoleSeller, role)
}

func TestParse_Errores(t *testing.T) {
	expired, err := Generate(secret, 1, RoleAdmin, "x", -1)
	require.NoError(t, err)
	_, _, err = Parse(secret, expired)
	assert.Error(t, err, "token expirado")

	tok, err := Generate(secret, 1, RoleAdmin, "x", 60)
	require.NoError(t, err)
	_, _, err = Parse("otro", tok)
	assert.Error(t, err, "secret incorrecto")

	noUser, err := Generate(secret, 0, RoleAdmin, "x", 60)
	require.NoError(t, err)
	_, _, err = Parse(secret, noUser)
	assert.Error(t, err, "sin user_id")

	_, err = Generate("", 1, RoleAdmin, "x", 60)
	assert.Error(t, err)
}
