package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice entity to InvoiceResponse DTO
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	return &dto.InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		PatientID:     invoice.PatientID,
		PatientName:   invoice.Patient.FullName,
		IssuedAt:      invoice.IssuedAt.Format("2006-01-02"),
		DueAt:         invoice.DueAt.Format("2006-01-02"),
		Subtotal:      invoice.Subtotal,
		Tax:           invoice.Tax,
		Total:         invoice.Total,
		Status:        invoice.Status,
		Notes:         invoice.Notes,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}

// InvoicesToResponses converts a slice of Invoice entities to InvoiceResponse DTOs
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *InvoiceToResponse(&invoices[i]))
	}
	return responses
}
