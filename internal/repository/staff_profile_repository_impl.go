package repository

import (
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffProfileRepository struct{}

func NewStaffProfileRepository() domainRepo.StaffProfileRepository {
	return &staffProfileRepository{}
}

func (r *staffProfileRepository) Create(db *gorm.DB, profile *entity.StaffProfile) error {
	return db.Create(profile).Error
}

func (r *staffProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error) {
	var profile entity.StaffProfile
	err := db.Preload("User.Role").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *staffProfileRepository) FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.StaffProfile, int64, error) {
	var profiles []entity.StaffProfile
	var total int64

	query := db.Model(&entity.StaffProfile{}).
		Joins("JOIN users ON users.id = staff_profiles.user_id")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("users.full_name ILIKE ? OR staff_profiles.position ILIKE ? OR staff_profiles.employee_number ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User.Role").
		Limit(limit).Offset(offset).Order("staff_profiles.employee_number ASC").Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *staffProfileRepository) Update(db *gorm.DB, profile *entity.StaffProfile) error {
	// Staff update touches users and staff_profiles together, inside the
	// caller's transaction.
	if err := db.Omit("Role", "StaffProfile").Save(&profile.User).Error; err != nil {
		return err
	}
	return db.Omit("User", "Appointments").Save(profile).Error
}
