package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateStaffRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	FullName       string `json:"full_name" validate:"required,min=2"`
	RoleID         int    `json:"role_id" validate:"required,gt=0"`
	EmployeeNumber string `json:"employee_number" validate:"required,min=3,max=50"`
	Position       string `json:"position" validate:"required,min=2,max=100"`
	Department     string `json:"department" validate:"omitempty,max=100"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	HireDate       string `json:"hire_date" validate:"required"`
}

type UpdateStaffRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=8"`
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	RoleID      int    `json:"role_id" validate:"omitempty,gt=0"`
	IsActive    *bool  `json:"is_active,omitempty"`
	Position    string `json:"position" validate:"omitempty,min=2,max=100"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=20"`
}

// Response DTOs

type StaffResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role,omitempty"`
	IsActive       bool      `json:"is_active"`
	EmployeeNumber string    `json:"employee_number"`
	Position       string    `json:"position"`
	Department     string    `json:"department,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	HireDate       string    `json:"hire_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
	Total int64           `json:"total"`
}
