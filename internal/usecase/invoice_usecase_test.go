package usecase

import (
	"context"
	"fmt"
	"testing"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvoiceUsecase(t *testing.T) (InvoiceUsecase, *gorm.DB) {
	db := setupTestDB(t)
	log := testLogger()
	auditSvc := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	uc := NewInvoiceUsecase(db, log,
		repository.NewInvoiceRepository(),
		repository.NewPatientRepository(),
		auditSvc)
	return uc, db
}

func TestCreateInvoiceComputesTotal(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	patient := seedPatient(t, db, "MRN-2001")

	resp, err := uc.Create(context.Background(), uuid.New(), &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0001",
		PatientID:     patient.ID,
		IssuedAt:      "2026-09-01",
		DueAt:         "2026-09-15",
		Subtotal:      decimal.RequireFromString("150.00"),
		Tax:           decimal.RequireFromString("16.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPending, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("166.50")),
		"total should be subtotal plus tax, got %s", resp.Total)
	assert.Equal(t, "Jane Roe", resp.PatientName)
}

func TestCreateInvoiceDueBeforeIssued(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	patient := seedPatient(t, db, "MRN-2002")

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0002",
		PatientID:     patient.ID,
		IssuedAt:      "2026-09-15",
		DueAt:         "2026-09-01",
		Subtotal:      decimal.RequireFromString("100.00"),
	})
	assert.ErrorIs(t, err, ErrDueBeforeIssued)
}

func TestCreateInvoiceNegativeAmount(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	patient := seedPatient(t, db, "MRN-2003")

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0003",
		PatientID:     patient.ID,
		IssuedAt:      "2026-09-01",
		DueAt:         "2026-09-15",
		Subtotal:      decimal.RequireFromString("-5.00"),
	})
	assert.ErrorIs(t, err, ErrNegativeInvoiceAmount)
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	patient := seedPatient(t, db, "MRN-2004")
	ctx := context.Background()

	req := &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0004",
		PatientID:     patient.ID,
		IssuedAt:      "2026-09-01",
		DueAt:         "2026-09-15",
		Subtotal:      decimal.RequireFromString("75.00"),
	}
	_, err := uc.Create(ctx, uuid.New(), req)
	require.NoError(t, err)

	_, err = uc.Create(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, ErrInvoiceNumberExists)
}

func TestCreateInvoiceUnknownPatient(t *testing.T) {
	uc, _ := newInvoiceUsecase(t)

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0005",
		PatientID:     uuid.New(),
		IssuedAt:      "2026-09-01",
		DueAt:         "2026-09-15",
		Subtotal:      decimal.RequireFromString("75.00"),
	})
	assert.ErrorIs(t, err, ErrInvoicePatientNotFound)
}

func TestUpdateInvoiceRecomputesTotal(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	patient := seedPatient(t, db, "MRN-2005")
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0006",
		PatientID:     patient.ID,
		IssuedAt:      "2026-09-01",
		DueAt:         "2026-09-15",
		Subtotal:      decimal.RequireFromString("100.00"),
		Tax:           decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	newSubtotal := decimal.RequireFromString("200.00")
	updated, err := uc.Update(ctx, uuid.New(), created.ID, &dto.UpdateInvoiceRequest{
		Subtotal: &newSubtotal,
	})
	require.NoError(t, err)

	// Tax is unchanged, so the new total is 200 + 10.
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("210.00")),
		"got %s", updated.Total)
}

func TestUpdateInvoiceStatusFreeForm(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	patient := seedPatient(t, db, "MRN-2006")
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0007",
		PatientID:     patient.ID,
		IssuedAt:      "2026-09-01",
		DueAt:         "2026-09-15",
		Subtotal:      decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)

	for _, status := range []string{entity.InvoiceStatusPaid, "written_off", entity.InvoiceStatusPending} {
		updated, err := uc.Update(ctx, uuid.New(), created.ID, &dto.UpdateInvoiceRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestGetAllInvoicesFilterByPatient(t *testing.T) {
	uc, db := newInvoiceUsecase(t)
	first := seedPatient(t, db, "MRN-2007")
	second := seedPatient(t, db, "MRN-2008")
	ctx := context.Background()

	for i, patient := range []*entity.Patient{first, second} {
		_, err := uc.Create(ctx, uuid.New(), &dto.CreateInvoiceRequest{
			InvoiceNumber: fmt.Sprintf("INV-2026-10%02d", i),
			PatientID:     patient.ID,
			IssuedAt:      "2026-09-01",
			DueAt:         "2026-09-15",
			Subtotal:      decimal.RequireFromString("25.00"),
		})
		require.NoError(t, err)
	}

	list, err := uc.GetAll(ctx, &entity.InvoiceFilter{PatientID: &first.ID}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Invoices, 1)
	assert.Equal(t, first.ID, list.Invoices[0].PatientID)
}
