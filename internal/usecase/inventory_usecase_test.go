package usecase

import (
	"context"
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

func newInventoryUsecase(t *testing.T) (InventoryUsecase, *gorm.DB) {
	db := setupTestDB(t)
	log := testLogger()
	auditSvc := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	return NewInventoryUsecase(db, log, repository.NewInventoryRepository(), auditSvc), db
}

func seedItem(t *testing.T, uc InventoryUsecase, sku string, stock int) *dto.InventoryItemResponse {
	t.Helper()
	item, err := uc.Create(context.Background(), uuid.New(), &dto.CreateInventoryItemRequest{
		SKU:           sku,
		Name:          "Surgical Gloves",
		Category:      "consumables",
		Unit:          "box",
		StockQuantity: stock,
		MinStock:      5,
		UnitPrice:     decimal.NewFromFloat(12.50),
	})
	require.NoError(t, err)
	return item
}

func TestCreateItemDuplicateSKU(t *testing.T) {
	uc, db := newInventoryUsecase(t)

	seedItem(t, uc, "GLV-001", 10)

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateInventoryItemRequest{
		SKU:       "GLV-001",
		Name:      "Other Gloves",
		Unit:      "box",
		UnitPrice: decimal.NewFromFloat(9.99),
	})
	assert.ErrorIs(t, err, ErrSKUAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&entity.InventoryItem{}).Where("sku = ?", "GLV-001").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAdjustStockIncrease(t *testing.T) {
	uc, db := newInventoryUsecase(t)
	item := seedItem(t, uc, "GLV-002", 10)
	actorID := uuid.New()

	updated, err := uc.AdjustStock(context.Background(), actorID, item.ID, &dto.AdjustStockRequest{
		Delta: 25,
		Note:  "weekly restock",
	})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.StockQuantity)

	var log entity.InventoryUsageLog
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&log).Error)
	assert.Equal(t, entity.UsageDirectionIn, log.Direction)
	assert.Equal(t, 25, log.Quantity)
	require.NotNil(t, log.UserID)
	assert.Equal(t, actorID, *log.UserID)
	assert.Equal(t, "weekly restock", log.Note)
}

func TestAdjustStockDecreaseStoresAbsoluteQuantity(t *testing.T) {
	uc, db := newInventoryUsecase(t)
	item := seedItem(t, uc, "GLV-003", 10)

	updated, err := uc.AdjustStock(context.Background(), uuid.New(), item.ID, &dto.AdjustStockRequest{
		Delta: -4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)

	var log entity.InventoryUsageLog
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&log).Error)
	assert.Equal(t, entity.UsageDirectionOut, log.Direction)
	assert.Equal(t, 4, log.Quantity)
}

func TestAdjustStockBelowZeroRejected(t *testing.T) {
	uc, db := newInventoryUsecase(t)
	item := seedItem(t, uc, "GLV-004", 15)

	_, err := uc.AdjustStock(context.Background(), uuid.New(), item.ID, &dto.AdjustStockRequest{
		Delta: -20,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The rejected adjustment leaves no trace: stock untouched, no usage log.
	var stored entity.InventoryItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 15, stored.StockQuantity)

	var logCount int64
	require.NoError(t, db.Model(&entity.InventoryUsageLog{}).Where("item_id = ?", item.ID).Count(&logCount).Error)
	assert.EqualValues(t, 0, logCount)
}

func TestAdjustStockZeroDelta(t *testing.T) {
	uc, _ := newInventoryUsecase(t)
	item := seedItem(t, uc, "GLV-005", 10)

	_, err := uc.AdjustStock(context.Background(), uuid.New(), item.ID, &dto.AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, ErrZeroDelta)
}

func TestAdjustStockItemNotFound(t *testing.T) {
	uc, _ := newInventoryUsecase(t)

	_, err := uc.AdjustStock(context.Background(), uuid.New(), uuid.New(), &dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetUsageLogs(t *testing.T) {
	uc, _ := newInventoryUsecase(t)
	item := seedItem(t, uc, "GLV-006", 50)
	ctx := context.Background()

	for _, delta := range []int{5, -3, 10} {
		_, err := uc.AdjustStock(ctx, uuid.New(), item.ID, &dto.AdjustStockRequest{Delta: delta})
		require.NoError(t, err)
	}

	logs, err := uc.GetUsageLogs(ctx, item.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, logs.Total)
	assert.Len(t, logs.Logs, 3)
}

func TestLowStockFlag(t *testing.T) {
	uc, _ := newInventoryUsecase(t)
	item := seedItem(t, uc, "GLV-007", 4)

	// min_stock is 5 in the seed, so a quantity of 4 is low.
	assert.True(t, item.LowStock)

	updated, err := uc.AdjustStock(context.Background(), uuid.New(), item.ID, &dto.AdjustStockRequest{Delta: 10})
	require.NoError(t, err)
	assert.False(t, updated.LowStock)
}
