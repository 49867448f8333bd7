package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// InventoryItemToResponse converts an InventoryItem entity to InventoryItemResponse DTO
func InventoryItemToResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	if item == nil {
		return nil
	}

	return &dto.InventoryItemResponse{
		ID:            item.ID,
		SKU:           item.SKU,
		Name:          item.Name,
		Category:      item.Category,
		Unit:          item.Unit,
		StockQuantity: item.StockQuantity,
		MinStock:      item.MinStock,
		UnitPrice:     item.UnitPrice,
		LowStock:      item.IsLowStock(),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// InventoryItemsToResponses converts a slice of InventoryItem entities to DTOs
func InventoryItemsToResponses(items []entity.InventoryItem) []dto.InventoryItemResponse {
	responses := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *InventoryItemToResponse(&items[i]))
	}
	return responses
}

// UsageLogToResponse converts an InventoryUsageLog entity to UsageLogResponse DTO
func UsageLogToResponse(log *entity.InventoryUsageLog) *dto.UsageLogResponse {
	if log == nil {
		return nil
	}

	return &dto.UsageLogResponse{
		ID:        log.ID,
		ItemID:    log.ItemID,
		UserID:    log.UserID,
		Direction: log.Direction,
		Quantity:  log.Quantity,
		Note:      log.Note,
		CreatedAt: log.CreatedAt,
	}
}

// UsageLogsToResponses converts a slice of InventoryUsageLog entities to DTOs
func UsageLogsToResponses(logs []entity.InventoryUsageLog) []dto.UsageLogResponse {
	responses := make([]dto.UsageLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *UsageLogToResponse(&logs[i]))
	}
	return responses
}
