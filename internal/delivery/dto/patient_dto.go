package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	MedicalRecordNumber string `json:"medical_record_number" validate:"required,min=3,max=50"`
	FullName            string `json:"full_name" validate:"required,min=2"`
	PhoneNumber         string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	Email               string `json:"email" validate:"omitempty,email"`
	DateOfBirth         string `json:"date_of_birth" validate:"required"`
	Gender              string `json:"gender" validate:"required,oneof=M F"`
	Address             string `json:"address"`
	BloodType           string `json:"blood_type" validate:"omitempty,max=5"`
	Allergies           string `json:"allergies"`
}

type UpdatePatientRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender" validate:"omitempty,oneof=M F"`
	Address     string `json:"address"`
	BloodType   string `json:"blood_type" validate:"omitempty,max=5"`
	Allergies   string `json:"allergies"`
}

// Response DTOs

type PatientResponse struct {
	ID                  uuid.UUID `json:"id"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	FullName            string    `json:"full_name"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	Email               string    `json:"email,omitempty"`
	DateOfBirth         string    `json:"date_of_birth"`
	Gender              string    `json:"gender"`
	Address             string    `json:"address,omitempty"`
	BloodType           string    `json:"blood_type,omitempty"`
	Allergies           string    `json:"allergies,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
}
