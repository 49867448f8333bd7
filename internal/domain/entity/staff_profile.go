package entity

import (
	"time"

	"github.com/google/uuid"
)

// StaffProfile represents staff-specific profile data
type StaffProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	EmployeeNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_number"`
	Position       string    `gorm:"type:varchar(100);not null;index" json:"position"`
	Department     string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	PhoneNumber    string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	HireDate       time.Time `gorm:"type:date;not null" json:"hire_date"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:StaffID" json:"appointments,omitempty"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}
