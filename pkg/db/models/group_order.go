package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// GroupOrder is a time-boxed collective order owned by its leader.
// User orders attach to it only while it is open and the clock sits
// inside [StartDate, EndDate).
type GroupOrder struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           *string                `gorm:"column:name"`
	OrganizationID uuid.UUID              `gorm:"column:organization_id;type:uuid;not null"`
	LeaderID       uuid.UUID              `gorm:"column:leader_id;type:uuid;not null"`
	Status         enums.GroupOrderStatus `gorm:"column:status;type:text;not null;default:'open'"`
	StartDate      time.Time              `gorm:"column:start_date;not null"`
	EndDate        time.Time              `gorm:"column:end_date;not null"`
	SubmittedAt    *time.Time             `gorm:"column:submitted_at"`
	UserOrders     []UserOrder            `gorm:"foreignKey:GroupOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// AcceptsUserOrders reports whether user orders may be created or edited
// at the given instant.
func (g GroupOrder) AcceptsUserOrders(now time.Time) bool {
	if g.Status != enums.GroupOrderStatusOpen {
		return false
	}
	return !now.Before(g.StartDate) && now.Before(g.EndDate)
}
