package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. External identity
// linkage is optional: provider plus subject identify the same person in
// a third-party IdP.
type User struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username         string     `gorm:"column:username;type:text;not null;uniqueIndex:idx_users_username"`
	ExternalProvider *string    `gorm:"column:external_provider"`
	ExternalSubject  *string    `gorm:"column:external_subject"`
	LastSeenAt       *time.Time `gorm:"column:last_seen_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
