package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-management-api/config"
	"clinic-management-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jwtService := newTestJWTService()
	return NewAuthMiddleware(jwtService, client), jwtService, client
}

func TestAuthenticateValidToken(t *testing.T) {
	m, jwtService, client := newTestAuthMiddleware(t)
	userID := uuid.New()

	token, tokenID, err := jwtService.GenerateAccessToken(userID, "doctor@clinic.test")
	require.NoError(t, err)
	require.NoError(t, client.Set(context.Background(),
		fmt.Sprintf("access_token:%s:%s", userID, tokenID), "1", time.Minute).Err())

	var gotUserID uuid.UUID
	var gotEmail, gotTokenID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotEmail, _ = GetUserEmailFromContext(r.Context())
		gotTokenID, _ = GetTokenIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "doctor@clinic.test", gotEmail)
	assert.Equal(t, tokenID, gotTokenID)
}

func TestAuthenticateRevokedToken(t *testing.T) {
	m, jwtService, _ := newTestAuthMiddleware(t)

	// Valid signature, but no matching allow-list key in redis.
	token, _, err := jwtService.GenerateAccessToken(uuid.New(), "doctor@clinic.test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Authenticate(failingNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	m, jwtService, client := newTestAuthMiddleware(t)
	userID := uuid.New()

	token, tokenID, err := jwtService.GenerateRefreshToken(userID, "doctor@clinic.test")
	require.NoError(t, err)
	require.NoError(t, client.Set(context.Background(),
		fmt.Sprintf("access_token:%s:%s", userID, tokenID), "1", time.Minute).Err())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Authenticate(failingNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()

	m.Authenticate(failingNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Token abc.def.ghi")
	rec := httptest.NewRecorder()

	m.Authenticate(failingNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	other := jwt.NewJWTService(config.JWTConfig{
		Secret:       "another-secret",
		AccessExpiry: 15 * time.Minute,
	})
	token, _, err := other.GenerateAccessToken(uuid.New(), "doctor@clinic.test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Authenticate(failingNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func failingNext(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be reached")
	})
}
