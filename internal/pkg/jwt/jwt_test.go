package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "emp-1", user.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims[ClaimUserID])
	assert.Equal(t, "emp-1", claims[ClaimEmployeeID])
	assert.Equal(t, "MANAGER", claims[ClaimRole])
	assert.Equal(t, TokenTypeAccess, claims[ClaimType])
}

func TestGenerateAccessToken_WithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, _, err := svc.GenerateAccessToken("user-1", "", user.RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	_, ok := decoded.Get(ClaimEmployeeID)
	assert.False(t, ok)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "", user.RoleAdmin)
	assert.Error(t, err)
}
