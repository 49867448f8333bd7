package service

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrPermissionDenied is the only error the resolver surfaces to callers.
// Store failures are logged but never propagated: any ambiguity resolves to
// a denial (fail closed).
var ErrPermissionDenied = errors.New("permission denied")

// PermissionService resolves the effective permission set for a caller.
// It is consumed by the route guards and by the /auth/me endpoint, so every
// enforcement point shares one evaluation path. Results are never cached;
// each check re-reads the role mapping.
type PermissionService interface {
	// Resolve returns the caller's effective permission set. Unknown or
	// inactive users resolve to the empty set.
	Resolve(ctx context.Context, userID uuid.UUID) (entity.PermissionSet, error)
	// Check verifies a single permission, failing closed on any error.
	Check(ctx context.Context, userID uuid.UUID, permission string) error
}

type permissionService struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewPermissionService(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository) PermissionService {
	return &permissionService{
		db:       db,
		log:      log,
		userRepo: userRepo,
	}
}

func (s *permissionService) Resolve(ctx context.Context, userID uuid.UUID) (entity.PermissionSet, error) {
	user, err := s.userRepo.FindByIDWithPermissions(s.db.WithContext(ctx), userID)
	if err != nil {
		s.log.Warnf("Failed to load user %s for permission resolution: %+v", userID, err)
		return entity.NewPermissionSet(), ErrPermissionDenied
	}
	if user == nil || !user.IsActive {
		return entity.NewPermissionSet(), nil
	}

	return user.Role.PermissionSet(), nil
}

func (s *permissionService) Check(ctx context.Context, userID uuid.UUID, permission string) error {
	perms, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	if !perms.Has(permission) {
		return ErrPermissionDenied
	}
	return nil
}
