package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clinic-management-api/config"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/repository"
	"clinic-management-api/internal/service"
	"clinic-management-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthUsecase(t *testing.T) (AuthUsecase, *gorm.DB, *redis.Client) {
	db := setupTestDB(t)
	log := testLogger()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	userRepo := repository.NewUserRepository()
	permissionSvc := service.NewPermissionService(db, log, userRepo)
	auditSvc := service.NewAuditService(db, log, repository.NewAuditLogRepository())

	uc := NewAuthUsecase(db, log, userRepo, permissionSvc, auditSvc, jwtService, client)
	return uc, db, client
}

func seedAccount(t *testing.T, db *gorm.DB, email, password string, active bool, perms ...string) *entity.User {
	t.Helper()
	role := &entity.Role{Name: "STAFF_" + uuid.NewString()[:8]}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, entity.RolePermission{Permission: p})
	}
	require.NoError(t, db.Create(role).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		RoleID:   role.ID,
		Email:    email,
		Password: string(hash),
		FullName: "Account Holder",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	uc, db, client := newAuthUsecase(t)
	user := seedAccount(t, db, "doctor@clinic.test", "correct-horse", true)
	ctx := context.Background()

	resp, err := uc.Login(ctx, &dto.LoginRequest{
		Email:    "doctor@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.EqualValues(t, 15*60, resp.ExpiresIn)

	// Both tokens land on the redis allow-list.
	accessKeys, err := client.Keys(ctx, fmt.Sprintf("access_token:%s:*", user.ID)).Result()
	require.NoError(t, err)
	assert.Len(t, accessKeys, 1)
	refreshKeys, err := client.Keys(ctx, fmt.Sprintf("refresh_token:%s:*", user.ID)).Result()
	require.NoError(t, err)
	assert.Len(t, refreshKeys, 1)

	var auditCount int64
	require.NoError(t, db.Model(&entity.AuditLog{}).
		Where("action = ?", entity.AuditActionUserLogin).Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, db, _ := newAuthUsecase(t)
	seedAccount(t, db, "doctor@clinic.test", "correct-horse", true)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "doctor@clinic.test",
		Password: "wrong-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	uc, _, _ := newAuthUsecase(t)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "whatever-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	uc, db, _ := newAuthUsecase(t)
	seedAccount(t, db, "former@clinic.test", "correct-horse", false)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "former@clinic.test",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogoutRemovesTokens(t *testing.T) {
	uc, db, client := newAuthUsecase(t)
	user := seedAccount(t, db, "doctor@clinic.test", "correct-horse", true)
	ctx := context.Background()

	_, err := uc.Login(ctx, &dto.LoginRequest{
		Email:    "doctor@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	accessKeys, err := client.Keys(ctx, fmt.Sprintf("access_token:%s:*", user.ID)).Result()
	require.NoError(t, err)
	require.Len(t, accessKeys, 1)
	refreshKeys, err := client.Keys(ctx, fmt.Sprintf("refresh_token:%s:*", user.ID)).Result()
	require.NoError(t, err)
	require.Len(t, refreshKeys, 1)

	// Key format is <prefix>:<user-id>:<token-id>.
	accessTokenID := accessKeys[0][len(fmt.Sprintf("access_token:%s:", user.ID)):]
	refreshTokenID := refreshKeys[0][len(fmt.Sprintf("refresh_token:%s:", user.ID)):]

	require.NoError(t, uc.Logout(ctx, user.ID, accessTokenID, refreshTokenID))

	remaining, err := client.Keys(ctx, "*").Result()
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRefreshTokenRotates(t *testing.T) {
	uc, db, _ := newAuthUsecase(t)
	seedAccount(t, db, "doctor@clinic.test", "correct-horse", true)
	ctx := context.Background()

	login, err := uc.Login(ctx, &dto.LoginRequest{
		Email:    "doctor@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token was single use.
	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	uc, db, _ := newAuthUsecase(t)
	seedAccount(t, db, "doctor@clinic.test", "correct-horse", true)
	ctx := context.Background()

	login, err := uc.Login(ctx, &dto.LoginRequest{
		Email:    "doctor@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetCurrentUser(t *testing.T) {
	uc, db, _ := newAuthUsecase(t)
	user := seedAccount(t, db, "doctor@clinic.test", "correct-horse", true,
		entity.PermissionReadPatient, entity.PermissionReadAppointment)

	resp, err := uc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "doctor@clinic.test", resp.Email)
	assert.ElementsMatch(t,
		[]string{entity.PermissionReadPatient, entity.PermissionReadAppointment},
		resp.Permissions)
}

func TestGetCurrentUserNotFound(t *testing.T) {
	uc, _, _ := newAuthUsecase(t)

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
