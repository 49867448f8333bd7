package usecase

import (
	"context"
	"errors"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleNameExists    = errors.New("role name already exists")
	ErrRoleHasUsers      = errors.New("role has assigned users")
	ErrUnknownPermission = errors.New("unknown permission")
)

type RoleUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	GetAll(ctx context.Context, search string, page, limit int) (*dto.RoleListResponse, error)
	GetByID(ctx context.Context, id int) (*dto.RoleResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id int) error
}

type roleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	roleRepo     repository.RoleRepository
	auditService service.AuditService
}

func NewRoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
	auditService service.AuditService,
) RoleUsecase {
	return &roleUsecase{
		db:           db,
		log:          log,
		roleRepo:     roleRepo,
		auditService: auditService,
	}
}

func validatePermissions(permissions []string) error {
	for _, p := range permissions {
		if !entity.IsKnownPermission(p) {
			return ErrUnknownPermission
		}
	}
	return nil
}

func (u *roleUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.roleRepo.FindByName(tx, req.Name)
	if err != nil {
		u.log.Warnf("Failed to find role by name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameExists
	}

	role := &entity.Role{
		Name:        req.Name,
		Description: req.Description,
	}
	for _, p := range req.Permissions {
		role.Permissions = append(role.Permissions, entity.RolePermission{Permission: p})
	}

	// Role row plus its permission mappings in one transaction.
	if err := u.roleRepo.Create(tx, role); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrRoleNameExists
		}
		u.log.Warnf("Failed to create role: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionRoleCreate, "role", role.Name, converter.RoleToResponse(role)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) GetAll(ctx context.Context, search string, page, limit int) (*dto.RoleListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	roles, total, err := u.roleRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all roles: %+v", err)
		return nil, err
	}

	return &dto.RoleListResponse{
		Roles: converter.RolesToResponses(roles),
		Total: total,
	}, nil
}

func (u *roleUsecase) GetByID(ctx context.Context, id int) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) Update(ctx context.Context, actorID uuid.UUID, id int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	if req.Permissions != nil {
		if err := validatePermissions(*req.Permissions); err != nil {
			return nil, err
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	oldValue := converter.RoleToResponse(role)

	if req.Name != nil && *req.Name != role.Name {
		collision, err := u.roleRepo.FindByName(tx, *req.Name)
		if err != nil {
			u.log.Warnf("Failed to find role by name: %+v", err)
			return nil, err
		}
		if collision != nil && collision.ID != role.ID {
			return nil, ErrRoleNameExists
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := u.roleRepo.Update(tx, role); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrRoleNameExists
		}
		u.log.Warnf("Failed to update role: %+v", err)
		return nil, err
	}

	if req.Permissions != nil {
		// Full replace instead of a diff: drop every mapping, reinsert the
		// requested set, all inside the same transaction.
		if err := u.roleRepo.ReplacePermissions(tx, role.ID, *req.Permissions); err != nil {
			u.log.Warnf("Failed to replace role permissions: %+v", err)
			return nil, err
		}
	}

	updated, err := u.roleRepo.FindByID(tx, role.ID)
	if err != nil {
		u.log.Warnf("Failed to reload role: %+v", err)
		return nil, err
	}

	newValue := converter.RoleToResponse(updated)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionRoleUpdate, "role", updated.Name, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *roleUsecase) Delete(ctx context.Context, actorID uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	userCount, err := u.roleRepo.CountUsers(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count role users: %+v", err)
		return err
	}
	if userCount > 0 {
		return ErrRoleHasUsers
	}

	oldValue := converter.RoleToResponse(role)

	if err := u.roleRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete role: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionRoleDelete, "role", role.Name, oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
