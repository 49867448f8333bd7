package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.RolePermission{},
		&entity.User{},
	))
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedUser(t *testing.T, db *gorm.DB, roleName string, active bool, perms ...string) *entity.User {
	role := &entity.Role{Name: roleName}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, entity.RolePermission{Permission: p})
	}
	require.NoError(t, db.Create(role).Error)

	user := &entity.User{
		RoleID:   role.ID,
		Email:    roleName + "@clinic.test",
		Password: "hash",
		FullName: roleName + " user",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		// The column carries a default of true, so flip it explicitly.
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	return user
}

func TestResolveRolePermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	user := seedUser(t, db, "ADMIN", true, entity.PermissionCreateUser, entity.PermissionReadUser)

	set, err := svc.Resolve(context.Background(), user.ID)
	require.NoError(t, err)

	assert.True(t, set.Has(entity.PermissionCreateUser))
	assert.True(t, set.Has(entity.PermissionReadUser))
	assert.False(t, set.Has(entity.PermissionDeleteUser))
	assert.False(t, set.IsWildcard())
}

func TestResolveSuperAdminWildcard(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	// No role_permissions rows at all; the name alone grants everything.
	user := seedUser(t, db, entity.RoleSuperAdmin, true)

	set, err := svc.Resolve(context.Background(), user.ID)
	require.NoError(t, err)

	assert.True(t, set.IsWildcard())
	for _, p := range entity.AllPermissions() {
		assert.True(t, set.Has(p))
	}
}

func TestResolveUnknownUserEmptySet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	set, err := svc.Resolve(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Empty(t, set.List())
	assert.False(t, set.Has(entity.PermissionReadPatient))
}

func TestResolveInactiveUserEmptySet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	user := seedUser(t, db, "ADMIN", false, entity.PermissionCreateUser)

	set, err := svc.Resolve(context.Background(), user.ID)
	require.NoError(t, err)

	assert.False(t, set.Has(entity.PermissionCreateUser))
	assert.Empty(t, set.List())
}

func TestCheckGrantsAndDenies(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	user := seedUser(t, db, "NURSE", true, entity.PermissionReadPatient)

	assert.NoError(t, svc.Check(context.Background(), user.ID, entity.PermissionReadPatient))
	assert.ErrorIs(t, svc.Check(context.Background(), user.ID, entity.PermissionDeletePatient), ErrPermissionDenied)
}

func TestCheckDeniesUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	err := svc.Check(context.Background(), uuid.New(), entity.PermissionReadPatient)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestResolveReflectsRoleEdits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testLogger(), repository.NewUserRepository())

	user := seedUser(t, db, "ADMIN", true, entity.PermissionReadUser)

	set, err := svc.Resolve(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, set.Has(entity.PermissionCreateUser))

	// Grant a new permission; the next resolution must see it without any
	// re-login or cache bust.
	require.NoError(t, db.Create(&entity.RolePermission{
		RoleID:     user.RoleID,
		Permission: entity.PermissionCreateUser,
	}).Error)

	set, err = svc.Resolve(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, set.Has(entity.PermissionCreateUser))
}
