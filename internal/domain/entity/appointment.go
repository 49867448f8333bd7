package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conventional appointment status values. The status column is a free-form
// string and transitions are not validated: any update may overwrite any
// status (last write wins).
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a scheduled patient visit
type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID       uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	StaffID         uuid.UUID `gorm:"type:uuid;not null;index" json:"staff_id"`
	ScheduledAt     time.Time `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`
	Reason          string    `gorm:"type:text" json:"reason,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	Status          string    `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Staff   StaffProfile `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	StaffID   *uuid.UUID
	Status    string
	StartAt   string // Format: YYYY-MM-DD
	EndAt     string // Format: YYYY-MM-DD
}
