package repository

import (
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Create(db *gorm.DB, role *entity.Role) error {
	return db.Create(role).Error
}

func (r *roleRepository) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	var role entity.Role
	err := db.Preload("Permissions").Preload("Users").Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Role, int64, error) {
	var roles []entity.Role
	var total int64

	query := db.Model(&entity.Role{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Permissions").Preload("Users").
		Limit(limit).Offset(offset).Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

func (r *roleRepository) Update(db *gorm.DB, role *entity.Role) error {
	return db.Omit("Permissions", "Users").Save(role).Error
}

func (r *roleRepository) Delete(db *gorm.DB, id int) error {
	// Permission mappings go first, then the role row.
	if err := db.Where("role_id = ?", id).Delete(&entity.RolePermission{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Role{}).Error
}

func (r *roleRepository) CountUsers(db *gorm.DB, roleID int) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

func (r *roleRepository) ReplacePermissions(db *gorm.DB, roleID int, permissions []string) error {
	// Full replace: delete all mappings, then reinsert.
	if err := db.Where("role_id = ?", roleID).Delete(&entity.RolePermission{}).Error; err != nil {
		return err
	}
	if len(permissions) == 0 {
		return nil
	}
	rows := make([]entity.RolePermission, 0, len(permissions))
	for _, p := range permissions {
		rows = append(rows, entity.RolePermission{RoleID: roleID, Permission: p})
	}
	return db.Create(&rows).Error
}
