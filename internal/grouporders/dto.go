package grouporders

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/internal/userorders"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
)

// GroupOrderDTO is the group order payload returned to clients.
type GroupOrderDTO struct {
	ID             uuid.UUID  `json:"id"`
	Name           *string    `json:"name,omitempty"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	LeaderID       uuid.UUID  `json:"leader_id"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// GroupOrderDetailDTO bundles the group order with every attached user
// order and the aggregate total.
type GroupOrderDetailDTO struct {
	GroupOrder GroupOrderDTO             `json:"group_order"`
	UserOrders []userorders.UserOrderDTO `json:"user_orders"`
	TotalCents int                       `json:"total_cents"`
}

// GroupOrderListDTO is one page of an organization's group orders.
type GroupOrderListDTO struct {
	Items      []GroupOrderDTO `json:"items"`
	NextCursor *string         `json:"next_cursor,omitempty"`
}

func toGroupOrderDTO(order *models.GroupOrder) GroupOrderDTO {
	return GroupOrderDTO{
		ID:             order.ID,
		Name:           order.Name,
		OrganizationID: order.OrganizationID,
		LeaderID:       order.LeaderID,
		Status:         order.Status.String(),
		StartDate:      order.StartDate,
		EndDate:        order.EndDate,
		SubmittedAt:    order.SubmittedAt,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func toGroupOrderDetailDTO(order *models.GroupOrder) GroupOrderDetailDTO {
	detail := GroupOrderDetailDTO{
		GroupOrder: toGroupOrderDTO(order),
		UserOrders: []userorders.UserOrderDTO{},
		TotalCents: userorders.TotalFromUserOrders(order.UserOrders),
	}
	for i := range order.UserOrders {
		detail.UserOrders = append(detail.UserOrders, userorders.ToUserOrderDTO(&order.UserOrders[i]))
	}
	return detail
}
