package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	StaffID         uuid.UUID `json:"staff_id" validate:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,gt=0"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
}

// UpdateAppointmentRequest mutates fields directly, including status.
// Status accepts any string and any transition overwrites the previous value.
type UpdateAppointmentRequest struct {
	StaffID         *uuid.UUID `json:"staff_id,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes" validate:"omitempty,gt=0"`
	Reason          string     `json:"reason"`
	Notes           string     `json:"notes"`
	Status          string     `json:"status"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	StaffID         uuid.UUID `json:"staff_id"`
	StaffName       string    `json:"staff_name,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}
