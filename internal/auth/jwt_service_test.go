package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
