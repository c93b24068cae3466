package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization groups users who order together.
type Organization struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string               `gorm:"column:name;type:text;not null"`
	ImageURL  *string              `gorm:"column:image_url"`
	Members   []OrganizationMember `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
