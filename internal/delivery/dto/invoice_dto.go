package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" validate:"required,min=3,max=50"`
	PatientID     uuid.UUID       `json:"patient_id" validate:"required"`
	IssuedAt      string          `json:"issued_at" validate:"required"`
	DueAt         string          `json:"due_at" validate:"required"`
	Subtotal      decimal.Decimal `json:"subtotal" validate:"required"`
	Tax           decimal.Decimal `json:"tax"`
	Notes         string          `json:"notes"`
}

// UpdateInvoiceRequest mutates fields directly, including status.
// Status accepts any string; transitions are not constrained.
type UpdateInvoiceRequest struct {
	DueAt    string           `json:"due_at"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
	Status   string           `json:"status"`
	Notes    string           `json:"notes"`
}

// Response DTOs

type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	PatientID     uuid.UUID       `json:"patient_id"`
	PatientName   string          `json:"patient_name,omitempty"`
	IssuedAt      string          `json:"issued_at"`
	DueAt         string          `json:"due_at"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total"`
}
