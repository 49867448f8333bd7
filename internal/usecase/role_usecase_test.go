package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"

	"clinic-management-api/internal/delivery/dto"
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

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.RolePermission{},
		&entity.User{},
		&entity.StaffProfile{},
		&entity.Patient{},
		&entity.Appointment{},
		&entity.InventoryItem{},
		&entity.InventoryUsageLog{},
		&entity.Invoice{},
		&entity.AuditLog{},
	))
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRoleUsecase(t *testing.T) (RoleUsecase, *gorm.DB) {
	db := setupTestDB(t)
	log := testLogger()
	auditSvc := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	return NewRoleUsecase(db, log, repository.NewRoleRepository(), auditSvc), db
}

func strPtr(s string) *string { return &s }

func TestCreateRole(t *testing.T) {
	uc, db := newRoleUsecase(t)

	resp, err := uc.Create(context.Background(), uuid.New(), &dto.CreateRoleRequest{
		Name:        "ADMIN",
		Description: "Administrators",
		Permissions: []string{entity.PermissionCreateUser, entity.PermissionReadUser},
	})
	require.NoError(t, err)

	assert.Equal(t, "ADMIN", resp.Name)
	assert.ElementsMatch(t, []string{entity.PermissionCreateUser, entity.PermissionReadUser}, resp.Permissions)

	var permCount int64
	require.NoError(t, db.Model(&entity.RolePermission{}).Where("role_id = ?", resp.ID).Count(&permCount).Error)
	assert.EqualValues(t, 2, permCount)

	var auditCount int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionRoleCreate).Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)
}

func TestCreateRoleDuplicateName(t *testing.T) {
	uc, db := newRoleUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{
		Name:        "ADMIN",
		Permissions: []string{entity.PermissionCreateUser},
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{
		Name:        "ADMIN",
		Permissions: []string{entity.PermissionReadUser},
	})
	assert.ErrorIs(t, err, ErrRoleNameExists)

	// The rejected create must leave no trace.
	var roleCount int64
	require.NoError(t, db.Model(&entity.Role{}).Where("name = ?", "ADMIN").Count(&roleCount).Error)
	assert.EqualValues(t, 1, roleCount)
}

func TestCreateRoleUnknownPermission(t *testing.T) {
	uc, db := newRoleUsecase(t)

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateRoleRequest{
		Name:        "WEIRD",
		Permissions: []string{"LAUNCH_MISSILES"},
	})
	assert.ErrorIs(t, err, ErrUnknownPermission)

	var roleCount int64
	require.NoError(t, db.Model(&entity.Role{}).Count(&roleCount).Error)
	assert.EqualValues(t, 0, roleCount)
}

func TestUpdateRoleReplacesPermissions(t *testing.T) {
	uc, db := newRoleUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{
		Name:        "NURSE",
		Permissions: []string{entity.PermissionReadPatient, entity.PermissionUpdatePatient},
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, uuid.New(), created.ID, &dto.UpdateRoleRequest{
		Permissions: &[]string{entity.PermissionReadAppointment},
	})
	require.NoError(t, err)

	// Full replace: the old pair is gone, only the new permission remains.
	assert.ElementsMatch(t, []string{entity.PermissionReadAppointment}, updated.Permissions)

	var rows []entity.RolePermission
	require.NoError(t, db.Where("role_id = ?", created.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.PermissionReadAppointment, rows[0].Permission)
}

func TestUpdateRoleRenameCollision(t *testing.T) {
	uc, _ := newRoleUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{Name: "ADMIN"})
	require.NoError(t, err)
	other, err := uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{Name: "NURSE"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, uuid.New(), other.ID, &dto.UpdateRoleRequest{Name: strPtr("ADMIN")})
	assert.ErrorIs(t, err, ErrRoleNameExists)
}

func TestDeleteRoleBlockedByAssignedUsers(t *testing.T) {
	uc, db := newRoleUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{
		Name:        "RECEPTIONIST",
		Permissions: []string{entity.PermissionReadAppointment},
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&entity.User{
		RoleID:   created.ID,
		Email:    "front@clinic.test",
		Password: "hash",
		FullName: "Front Desk",
		IsActive: true,
	}).Error)

	err = uc.Delete(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, ErrRoleHasUsers)

	// Role and mappings survive the rejected delete.
	var roleCount, permCount int64
	require.NoError(t, db.Model(&entity.Role{}).Where("id = ?", created.ID).Count(&roleCount).Error)
	require.NoError(t, db.Model(&entity.RolePermission{}).Where("role_id = ?", created.ID).Count(&permCount).Error)
	assert.EqualValues(t, 1, roleCount)
	assert.EqualValues(t, 1, permCount)
}

func TestDeleteRoleRemovesMappings(t *testing.T) {
	uc, db := newRoleUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateRoleRequest{
		Name:        "TEMP",
		Permissions: []string{entity.PermissionReadPatient, entity.PermissionReadAppointment},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, uuid.New(), created.ID))

	var roleCount, permCount int64
	require.NoError(t, db.Model(&entity.Role{}).Where("id = ?", created.ID).Count(&roleCount).Error)
	require.NoError(t, db.Model(&entity.RolePermission{}).Where("role_id = ?", created.ID).Count(&permCount).Error)
	assert.EqualValues(t, 0, roleCount)
	assert.EqualValues(t, 0, permCount)
}

func TestDeleteRoleNotFound(t *testing.T) {
	uc, _ := newRoleUsecase(t)

	err := uc.Delete(context.Background(), uuid.New(), 9999)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
