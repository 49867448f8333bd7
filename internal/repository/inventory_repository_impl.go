package repository

import (
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type inventoryRepository struct{}

func NewInventoryRepository() domainRepo.InventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) Create(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Create(item).Error
}

func (r *inventoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindBySKU(db *gorm.DB, sku string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Where("sku = ?", sku).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindAll(db *gorm.DB, search string, lowStockOnly bool, limit, offset int) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := db.Model(&entity.InventoryItem{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	if lowStockOnly {
		query = query.Where("stock_quantity < min_stock")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *inventoryRepository) Update(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Omit("UsageLogs").Save(item).Error
}

func (r *inventoryRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.InventoryItem{})
	return result.RowsAffected, result.Error
}

func (r *inventoryRepository) CreateUsageLog(db *gorm.DB, log *entity.InventoryUsageLog) error {
	return db.Create(log).Error
}

func (r *inventoryRepository) FindUsageLogs(db *gorm.DB, itemID uuid.UUID, limit, offset int) ([]entity.InventoryUsageLog, int64, error) {
	var logs []entity.InventoryUsageLog
	var total int64

	query := db.Model(&entity.InventoryUsageLog{}).Where("item_id = ?", itemID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Limit(limit).Offset(offset).Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
