package repository

import (
	"clinic-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(db *gorm.DB, role *entity.Role) error
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Role, int64, error)
	Update(db *gorm.DB, role *entity.Role) error
	Delete(db *gorm.DB, id int) error
	CountUsers(db *gorm.DB, roleID int) (int64, error)
	ReplacePermissions(db *gorm.DB, roleID int, permissions []string) error
}
