package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// StockItem is one orderable catalog entry. Its ID is derived
// deterministically from (category, code), so re-seeding the catalog
// never changes identifiers.
type StockItem struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Code       string              `gorm:"column:code;type:text;not null;uniqueIndex:idx_stock_items_category_code"`
	Category   enums.StockCategory `gorm:"column:category;type:text;not null;uniqueIndex:idx_stock_items_category_code"`
	Name       string              `gorm:"column:name;type:text;not null"`
	PriceCents int                 `gorm:"column:price_cents;not null;default:0"`
	Available  bool                `gorm:"column:available;not null;default:true"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
