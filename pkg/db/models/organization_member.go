package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// OrganizationMember links a user to an organization with a role and an
// approval status. One membership per (organization, user) pair.
type OrganizationMember struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID              `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_org_members_org_user"`
	UserID         uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_org_members_org_user"`
	Role           enums.MemberRole       `gorm:"column:role;type:text;not null;default:'member'"`
	Status         enums.MembershipStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	InvitedBy      *uuid.UUID             `gorm:"column:invited_by;type:uuid"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
