package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRejectsEmptySecret(t *testing.T) {
	assert.Error(t, Init(""))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	tokenString, err := GenerateJWT(42, "client@example.com", "client")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "client@example.com", claims["email"])
	assert.Equal(t, "client", claims["role"])
}

func TestVerifyJWTRejectsTampered(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	tokenString, err := GenerateJWT(42, "client@example.com", "client")
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString + "x")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	require.NoError(t, Init("first-secret"))

	tokenString, err := GenerateJWT(42, "client@example.com", "client")
	require.NoError(t, err)

	require.NoError(t, Init("second-secret"))

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}
