package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPermissionTest(t *testing.T) (*PermissionMiddleware, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.RolePermission{},
		&entity.User{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)
	permissionService := service.NewPermissionService(db, log, repository.NewUserRepository())
	return NewPermissionMiddleware(permissionService), db
}

func seedUserWithPermissions(t *testing.T, db *gorm.DB, perms ...string) *entity.User {
	t.Helper()
	role := &entity.Role{Name: "ROLE_" + uuid.NewString()[:8]}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, entity.RolePermission{Permission: p})
	}
	require.NoError(t, db.Create(role).Error)

	user := &entity.User{
		RoleID:   role.ID,
		Email:    uuid.NewString()[:8] + "@clinic.test",
		Password: "hash",
		FullName: "Test User",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func requestAs(userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestRequireAllowsGrantedPermission(t *testing.T) {
	m, db := setupPermissionTest(t)
	user := seedUserWithPermissions(t, db, entity.PermissionReadPatient)

	var gotPerms entity.PermissionSet
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerms, _ = GetPermissionsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	m.Require(entity.PermissionReadPatient)(next).ServeHTTP(rec, requestAs(user.ID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotPerms.Has(entity.PermissionReadPatient))
}

func TestRequireDeniesMissingPermission(t *testing.T) {
	m, db := setupPermissionTest(t)
	user := seedUserWithPermissions(t, db, entity.PermissionReadPatient)

	rec := httptest.NewRecorder()
	m.Require(entity.PermissionDeletePatient)(failingNext(t)).ServeHTTP(rec, requestAs(user.ID))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireWithoutIdentity(t *testing.T) {
	m, _ := setupPermissionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()
	m.Require(entity.PermissionReadPatient)(failingNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUnknownUser(t *testing.T) {
	m, _ := setupPermissionTest(t)

	rec := httptest.NewRecorder()
	m.Require(entity.PermissionReadPatient)(failingNext(t)).ServeHTTP(rec, requestAs(uuid.New()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireSuperAdminWildcard(t *testing.T) {
	m, db := setupPermissionTest(t)

	role := &entity.Role{Name: entity.RoleSuperAdmin}
	require.NoError(t, db.Create(role).Error)
	user := &entity.User{
		RoleID:   role.ID,
		Email:    "root@clinic.test",
		Password: "hash",
		FullName: "Root",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	m.Require(entity.PermissionDeleteRole)(next).ServeHTTP(rec, requestAs(user.ID))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAnyAndAll(t *testing.T) {
	m, db := setupPermissionTest(t)
	user := seedUserWithPermissions(t, db,
		entity.PermissionReadPatient, entity.PermissionReadAppointment)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	m.RequireAny(entity.PermissionDeletePatient, entity.PermissionReadPatient)(ok).ServeHTTP(rec, requestAs(user.ID))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	m.RequireAll(entity.PermissionReadPatient, entity.PermissionReadAppointment)(ok).ServeHTTP(rec, requestAs(user.ID))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	m.RequireAll(entity.PermissionReadPatient, entity.PermissionDeletePatient)(failingNext(t)).ServeHTTP(rec, requestAs(user.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
