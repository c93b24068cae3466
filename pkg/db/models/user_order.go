package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

// UserOrder is one participant's line items within a group order. The
// (group_order_id, user_id) pair is unique; concurrent duplicate
// submissions are rejected by the constraint, not by application code.
type UserOrder struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupOrderID uuid.UUID        `gorm:"column:group_order_id;type:uuid;not null;uniqueIndex:idx_user_orders_group_user"`
	UserID       uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_orders_group_user"`
	Items        types.OrderItems `gorm:"column:items;type:jsonb;serializer:json"`
	Reimbursed   bool             `gorm:"column:reimbursed;not null;default:false"`
	PaidByUser   bool             `gorm:"column:paid_by_user;not null;default:false"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
