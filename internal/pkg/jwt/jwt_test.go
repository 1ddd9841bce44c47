package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "emp-1", "org-1", "admin")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	verified, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := verified.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "org-1", claims["org_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "emp-1", "org-1", "employee")
	assert.Error(t, err)
}

func TestGenerateAccessToken_RejectedByOtherKey(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	other := NewJWTService("different-secret", "1h")

	token, _, err := svc.GenerateAccessToken("user-1", "emp-1", "org-1", "employee")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(other.JWTAuth(), token)
	assert.Error(t, err)
}
