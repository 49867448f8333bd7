package jwt

import (
	"testing"
	"time"

	"clinic-management-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestService()
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "doctor@clinic.test")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "doctor@clinic.test", claims.Email)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := newTestService()

	token, tokenID, err := s.GenerateRefreshToken(uuid.New(), "doctor@clinic.test")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	s := newTestService()
	token, _, err := s.GenerateAccessToken(uuid.New(), "doctor@clinic.test")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different-secret"})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	s := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})
	token, _, err := s.GenerateAccessToken(uuid.New(), "doctor@clinic.test")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	s := newTestService()
	_, err := s.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	s := newTestService()

	_, first, err := s.GenerateAccessToken(uuid.New(), "a@clinic.test")
	require.NoError(t, err)
	_, second, err := s.GenerateAccessToken(uuid.New(), "a@clinic.test")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
