package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokopos/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	user := &models.User{ID: 7, Username: "cashier", Name: "Kasir Utama", Role: "cashier"}
	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "cashier", claims.Username)
	assert.Equal(t, "Kasir Utama", claims.Name)
	assert.Equal(t, "cashier", claims.Role)
}

func TestTokenRejectsWrongKey(t *testing.T) {
	Init("key-one")
	token, err := GenerateToken(&models.User{ID: 1, Username: "admin", Role: "admin"})
	require.NoError(t, err)

	Init("key-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	Init("test-secret")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
