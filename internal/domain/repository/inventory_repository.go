package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(db *gorm.DB, item *entity.InventoryItem) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error)
	FindBySKU(db *gorm.DB, sku string) (*entity.InventoryItem, error)
	FindAll(db *gorm.DB, search string, lowStockOnly bool, limit, offset int) ([]entity.InventoryItem, int64, error)
	Update(db *gorm.DB, item *entity.InventoryItem) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CreateUsageLog(db *gorm.DB, log *entity.InventoryUsageLog) error
	FindUsageLogs(db *gorm.DB, itemID uuid.UUID, limit, offset int) ([]entity.InventoryUsageLog, int64, error)
}
