package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem represents a stocked clinic item
type InventoryItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SKU           string          `gorm:"column:sku;type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Category      string          `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Unit          string          `gorm:"type:varchar(20);not null" json:"unit"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	MinStock      int             `gorm:"not null;default:0" json:"min_stock"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	UsageLogs []InventoryUsageLog `gorm:"foreignKey:ItemID" json:"usage_logs,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsLowStock checks if the stock fell below the minimum threshold
func (i *InventoryItem) IsLowStock() bool {
	return i.StockQuantity < i.MinStock
}

// Usage log directions. The quantity column is always the absolute value of
// the applied delta; the direction records its sign.
const (
	UsageDirectionIn  = "in"
	UsageDirectionOut = "out"
)

// InventoryUsageLog records one signed stock adjustment
type InventoryUsageLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Direction string     `gorm:"type:varchar(10);not null" json:"direction"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	Note      string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Item InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	User *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (InventoryUsageLog) TableName() string {
	return "inventory_usage_logs"
}
