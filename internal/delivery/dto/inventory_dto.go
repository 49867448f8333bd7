package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateInventoryItemRequest struct {
	SKU           string          `json:"sku" validate:"required,min=2,max=50"`
	Name          string          `json:"name" validate:"required,min=2"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	Unit          string          `json:"unit" validate:"required,max=20"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	MinStock      int             `json:"min_stock" validate:"gte=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"required"`
}

type UpdateInventoryItemRequest struct {
	Name      string           `json:"name" validate:"omitempty,min=2"`
	Category  string           `json:"category" validate:"omitempty,max=100"`
	Unit      string           `json:"unit" validate:"omitempty,max=20"`
	MinStock  *int             `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// AdjustStockRequest applies a signed delta to the stock quantity.
// A resulting negative quantity is rejected without any mutation.
type AdjustStockRequest struct {
	Delta int    `json:"delta" validate:"required"`
	Note  string `json:"note"`
}

// Response DTOs

type InventoryItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Total int64                   `json:"total"`
}

type UsageLogResponse struct {
	ID        int64      `json:"id"`
	ItemID    uuid.UUID  `json:"item_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Direction string     `json:"direction"`
	Quantity  int        `json:"quantity"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type UsageLogListResponse struct {
	Logs  []UsageLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
