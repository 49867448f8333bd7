package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindByIDWithPermissions loads the user together with its role and the
	// role's permission rows. Used by the permission resolver.
	FindByIDWithPermissions(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.User, int64, error)
	Update(db *gorm.DB, user *entity.User) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
