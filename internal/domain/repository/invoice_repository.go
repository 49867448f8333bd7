package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindByNumber(db *gorm.DB, number string) (*entity.Invoice, error)
	FindAll(db *gorm.DB, filter *entity.InvoiceFilter, limit, offset int) ([]entity.Invoice, int64, error)
	Update(db *gorm.DB, invoice *entity.Invoice) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
