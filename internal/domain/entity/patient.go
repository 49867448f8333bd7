package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a clinic patient record
type Patient struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MedicalRecordNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"medical_record_number"`
	FullName            string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	PhoneNumber         string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Email               string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	DateOfBirth         time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender              string    `gorm:"type:char(1);not null" json:"gender"`
	Address             string    `gorm:"type:text" json:"address,omitempty"`
	BloodType           string    `gorm:"type:varchar(5)" json:"blood_type,omitempty"`
	Allergies           string    `gorm:"type:text" json:"allergies,omitempty"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Invoices     []Invoice     `gorm:"foreignKey:PatientID" json:"invoices,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
