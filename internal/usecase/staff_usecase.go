package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrStaffNotFound          = errors.New("staff member not found")
	ErrEmployeeNumberExists   = errors.New("employee number already exists")
	ErrStaffEmailExists       = errors.New("email already exists")
	ErrStaffRoleNotFound      = errors.New("role not found")
	ErrStaffInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type StaffUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetAll(ctx context.Context, search string, page, limit int) (*dto.StaffListResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, userID uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, userID uuid.UUID) error
}

type staffUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	staffRepo    repository.StaffProfileRepository
	auditService service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	staffRepo repository.StaffProfileRepository,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		staffRepo:    staffRepo,
		auditService: auditService,
	}
}

func (u *staffUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, ErrStaffInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrStaffEmailExists
	}

	role, err := u.roleRepo.FindByID(tx, req.RoleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrStaffRoleNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	// User and staff profile in one transaction via GORM association.
	profile := &entity.StaffProfile{
		EmployeeNumber: req.EmployeeNumber,
		Position:       req.Position,
		Department:     req.Department,
		PhoneNumber:    req.PhoneNumber,
		HireDate:       hireDate,
		User: entity.User{
			Email:    req.Email,
			Password: string(hashedPassword),
			FullName: req.FullName,
			RoleID:   req.RoleID,
			IsActive: true,
		},
	}

	if err := u.staffRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrStaffEmailExists
		}
		if isDuplicateKeyError(err, "employee_number") {
			return nil, ErrEmployeeNumberExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrStaffRoleNotFound
		}
		u.log.Warnf("Failed to create staff member: %+v", err)
		return nil, err
	}
	profile.User.Role = *role

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionStaffCreate, "staff_profile", profile.UserID.String(), converter.StaffProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.StaffProfileToResponse(profile), nil
}

func (u *staffUsecase) GetAll(ctx context.Context, search string, page, limit int) (*dto.StaffListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	profiles, total, err := u.staffRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all staff profiles: %+v", err)
		return nil, err
	}

	return &dto.StaffListResponse{
		Staff: converter.StaffProfilesToResponses(profiles),
		Total: total,
	}, nil
}

func (u *staffUsecase) GetByID(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error) {
	profile, err := u.staffRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find staff profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrStaffNotFound
	}

	return converter.StaffProfileToResponse(profile), nil
}

func (u *staffUsecase) Update(ctx context.Context, actorID uuid.UUID, userID uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.staffRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find staff profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrStaffNotFound
	}

	oldValue := converter.StaffProfileToResponse(profile)

	if req.Email != "" {
		profile.User.Email = req.Email
	}
	if req.FullName != "" {
		profile.User.FullName = req.FullName
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		profile.User.Password = string(hashedPassword)
	}
	if req.RoleID != 0 && req.RoleID != profile.User.RoleID {
		role, err := u.roleRepo.FindByID(tx, req.RoleID)
		if err != nil {
			u.log.Warnf("Failed to find role: %+v", err)
			return nil, err
		}
		if role == nil {
			return nil, ErrStaffRoleNotFound
		}
		profile.User.RoleID = req.RoleID
		profile.User.Role = *role
	}
	if req.IsActive != nil {
		profile.User.IsActive = *req.IsActive
	}
	if req.Position != "" {
		profile.Position = req.Position
	}
	if req.Department != "" {
		profile.Department = req.Department
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}

	// Touches users and staff_profiles inside one transaction.
	if err := u.staffRepo.Update(tx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrStaffEmailExists
		}
		u.log.Warnf("Failed to update staff profile: %+v", err)
		return nil, err
	}

	newValue := converter.StaffProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionStaffUpdate, "staff_profile", userID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *staffUsecase) Delete(ctx context.Context, actorID uuid.UUID, userID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.staffRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find staff profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrStaffNotFound
	}
	oldValue := converter.StaffProfileToResponse(profile)

	// Deleting the user cascades to the staff profile row.
	affectedRows, err := u.userRepo.Delete(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to delete staff member: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrStaffNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionStaffDelete, "staff_profile", userID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
