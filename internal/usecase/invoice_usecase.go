package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrInvoiceNumberExists    = errors.New("invoice number already exists")
	ErrInvoicePatientNotFound = errors.New("patient not found for invoice")
	ErrNegativeInvoiceAmount  = errors.New("invoice amounts must not be negative")
	ErrDueBeforeIssued        = errors.New("due date must not precede issue date")
)

type InvoiceUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetAll(ctx context.Context, filter *entity.InvoiceFilter, page, limit int) (*dto.InvoiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type invoiceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	invoiceRepo  repository.InvoiceRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:           db,
		log:          log,
		invoiceRepo:  invoiceRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *invoiceUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	issuedAt, err := time.Parse("2006-01-02", req.IssuedAt)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	dueAt, err := time.Parse("2006-01-02", req.DueAt)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if dueAt.Before(issuedAt) {
		return nil, ErrDueBeforeIssued
	}
	if req.Subtotal.IsNegative() || req.Tax.IsNegative() {
		return nil, ErrNegativeInvoiceAmount
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvoicePatientNotFound
	}

	existing, err := u.invoiceRepo.FindByNumber(tx, req.InvoiceNumber)
	if err != nil {
		u.log.Warnf("Failed to find invoice by number: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrInvoiceNumberExists
	}

	invoice := &entity.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		PatientID:     req.PatientID,
		IssuedAt:      issuedAt,
		DueAt:         dueAt,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Subtotal.Add(req.Tax),
		Status:        entity.InvoiceStatusPending,
		Notes:         req.Notes,
	}

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		if isDuplicateKeyError(err, "invoice_number") {
			return nil, ErrInvoiceNumberExists
		}
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}
	invoice.Patient = *patient

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionInvoiceCreate, "invoice", invoice.ID.String(), converter.InvoiceToResponse(invoice)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) GetAll(ctx context.Context, filter *entity.InvoiceFilter, page, limit int) (*dto.InvoiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	invoices, total, err := u.invoiceRepo.FindAll(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all invoices: %+v", err)
		return nil, err
	}

	return &dto.InvoiceListResponse{
		Invoices: converter.InvoicesToResponses(invoices),
		Total:    total,
	}, nil
}

func (u *invoiceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	oldValue := converter.InvoiceToResponse(invoice)

	if req.DueAt != "" {
		dueAt, err := time.Parse("2006-01-02", req.DueAt)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		if dueAt.Before(invoice.IssuedAt) {
			return nil, ErrDueBeforeIssued
		}
		invoice.DueAt = dueAt
	}
	if req.Subtotal != nil {
		if req.Subtotal.IsNegative() {
			return nil, ErrNegativeInvoiceAmount
		}
		invoice.Subtotal = *req.Subtotal
	}
	if req.Tax != nil {
		if req.Tax.IsNegative() {
			return nil, ErrNegativeInvoiceAmount
		}
		invoice.Tax = *req.Tax
	}
	invoice.Total = invoice.Subtotal.Add(invoice.Tax)

	// Status is a free-form string; any value is stored as received.
	if req.Status != "" {
		invoice.Status = req.Status
	}
	if req.Notes != "" {
		invoice.Notes = req.Notes
	}

	if err := u.invoiceRepo.Update(tx, invoice); err != nil {
		u.log.Warnf("Failed to update invoice: %+v", err)
		return nil, err
	}

	newValue := converter.InvoiceToResponse(invoice)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionInvoiceUpdate, "invoice", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *invoiceUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return err
	}
	if invoice == nil {
		return ErrInvoiceNotFound
	}
	oldValue := converter.InvoiceToResponse(invoice)

	affectedRows, err := u.invoiceRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete invoice: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrInvoiceNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionInvoiceDelete, "invoice", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
