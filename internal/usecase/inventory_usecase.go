package usecase

import (
	"context"
	"errors"

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
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrSKUAlreadyExists  = errors.New("SKU already exists")
	ErrInsufficientStock = errors.New("insufficient stock for adjustment")
	ErrZeroDelta         = errors.New("delta must be non-zero")
)

type InventoryUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	GetAll(ctx context.Context, search string, lowStockOnly bool, page, limit int) (*dto.InventoryListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
	AdjustStock(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.InventoryItemResponse, error)
	GetUsageLogs(ctx context.Context, id uuid.UUID, page, limit int) (*dto.UsageLogListResponse, error)
}

type inventoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	inventoryRepo repository.InventoryRepository
	auditService  service.AuditService
}

func NewInventoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	inventoryRepo repository.InventoryRepository,
	auditService service.AuditService,
) InventoryUsecase {
	return &inventoryUsecase{
		db:            db,
		log:           log,
		inventoryRepo: inventoryRepo,
		auditService:  auditService,
	}
}

func (u *inventoryUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.inventoryRepo.FindBySKU(tx, req.SKU)
	if err != nil {
		u.log.Warnf("Failed to find inventory item by SKU: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUAlreadyExists
	}

	item := &entity.InventoryItem{
		SKU:           req.SKU,
		Name:          req.Name,
		Category:      req.Category,
		Unit:          req.Unit,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		UnitPrice:     req.UnitPrice,
	}

	if err := u.inventoryRepo.Create(tx, item); err != nil {
		if isDuplicateKeyError(err, "sku") {
			return nil, ErrSKUAlreadyExists
		}
		u.log.Warnf("Failed to create inventory item: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionInventoryCreate, "inventory_item", item.ID.String(), converter.InventoryItemToResponse(item)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InventoryItemToResponse(item), nil
}

func (u *inventoryUsecase) GetAll(ctx context.Context, search string, lowStockOnly bool, page, limit int) (*dto.InventoryListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	items, total, err := u.inventoryRepo.FindAll(u.db.WithContext(ctx), search, lowStockOnly, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all inventory items: %+v", err)
		return nil, err
	}

	return &dto.InventoryListResponse{
		Items: converter.InventoryItemsToResponses(items),
		Total: total,
	}, nil
}

func (u *inventoryUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error) {
	item, err := u.inventoryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	return converter.InventoryItemToResponse(item), nil
}

func (u *inventoryUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	oldValue := converter.InventoryItemToResponse(item)

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}

	if err := u.inventoryRepo.Update(tx, item); err != nil {
		u.log.Warnf("Failed to update inventory item: %+v", err)
		return nil, err
	}

	newValue := converter.InventoryItemToResponse(item)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionInventoryUpdate, "inventory_item", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *inventoryUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	oldValue := converter.InventoryItemToResponse(item)

	affectedRows, err := u.inventoryRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete inventory item: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrItemNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionInventoryDelete, "inventory_item", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// AdjustStock applies a signed delta to the item's stock quantity. The stock
// row and the usage-log row commit together; an adjustment that would drive
// the quantity negative is rejected without touching either table.
func (u *inventoryUsecase) AdjustStock(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.InventoryItemResponse, error) {
	if req.Delta == 0 {
		return nil, ErrZeroDelta
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	newQuantity := item.StockQuantity + req.Delta
	if newQuantity < 0 {
		return nil, ErrInsufficientStock
	}

	oldValue := converter.InventoryItemToResponse(item)
	item.StockQuantity = newQuantity

	if err := u.inventoryRepo.Update(tx, item); err != nil {
		u.log.Warnf("Failed to update inventory item: %+v", err)
		return nil, err
	}

	direction := entity.UsageDirectionIn
	quantity := req.Delta
	if req.Delta < 0 {
		direction = entity.UsageDirectionOut
		quantity = -req.Delta
	}

	usageLog := &entity.InventoryUsageLog{
		ItemID:    item.ID,
		UserID:    &actorID,
		Direction: direction,
		Quantity:  quantity,
		Note:      req.Note,
	}
	if err := u.inventoryRepo.CreateUsageLog(tx, usageLog); err != nil {
		u.log.Warnf("Failed to create usage log: %+v", err)
		return nil, err
	}

	newValue := converter.InventoryItemToResponse(item)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionInventoryAdjust, "inventory_item", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *inventoryUsecase) GetUsageLogs(ctx context.Context, id uuid.UUID, page, limit int) (*dto.UsageLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	item, err := u.inventoryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	logs, total, err := u.inventoryRepo.FindUsageLogs(u.db.WithContext(ctx), id, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find usage logs: %+v", err)
		return nil, err
	}

	return &dto.UsageLogListResponse{
		Logs:  converter.UsageLogsToResponses(logs),
		Total: total,
	}, nil
}
