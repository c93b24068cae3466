package userorders

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

// UserOrderDTO is one participant's order as returned to clients.
type UserOrderDTO struct {
	ID           uuid.UUID        `json:"id"`
	GroupOrderID uuid.UUID        `json:"group_order_id"`
	UserID       uuid.UUID        `json:"user_id"`
	Items        types.OrderItems `json:"items"`
	TotalCents   int              `json:"total_cents"`
	Reimbursed   bool             `json:"reimbursed"`
	PaidByUser   bool             `json:"paid_by_user"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToUserOrderDTO converts the row, computing its total.
func ToUserOrderDTO(order *models.UserOrder) UserOrderDTO {
	return UserOrderDTO{
		ID:           order.ID,
		GroupOrderID: order.GroupOrderID,
		UserID:       order.UserID,
		Items:        order.Items,
		TotalCents:   OrderItemsTotalCents(order.Items),
		Reimbursed:   order.Reimbursed,
		PaidByUser:   order.PaidByUser,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
