package jwt

import (
	"testing"

	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "168h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "staff@example.com", "Staff One", user.RoleStaff)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	get := func(key string) interface{} {
		v, ok := token.Get(key)
		require.True(t, ok, "claim %s missing", key)
		return v
	}
	assert.Equal(t, "user-1", get("user_id"))
	assert.Equal(t, "staff@example.com", get("email"))
	assert.Equal(t, "Staff One", get("full_name"))
	assert.Equal(t, "staff", get("role"))
	assert.Equal(t, "access", get("type"))
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	typ, ok := token.Get("type")
	require.True(t, ok)
	assert.Equal(t, "refresh", typ)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "not-a-duration", "168h")
	_, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", "A", user.RoleStaff)
	assert.Error(t, err)
}

func TestStreamToken(t *testing.T) {
	svc := newTestService()

	tokenString, expiresIn, err := svc.GenerateStreamToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateStreamToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateStreamToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	accessToken, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", "A", user.RoleStaff)
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(accessToken)
	assert.Error(t, err)
}

func TestValidateStreamToken_RejectsWrongKey(t *testing.T) {
	other := NewJWTService("a-different-secret", "1h", "168h")
	tokenString, _, err := other.GenerateStreamToken("user-1")
	require.NoError(t, err)

	_, err = newTestService().ValidateStreamToken(tokenString)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	cookie := svc.RefreshTokenCookie("tok", 1900000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
