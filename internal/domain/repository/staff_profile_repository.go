package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffProfileRepository interface {
	Create(db *gorm.DB, profile *entity.StaffProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.StaffProfile, int64, error)
	Update(db *gorm.DB, profile *entity.StaffProfile) error
}
