package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
)

// UserDTO is the user payload returned to clients.
type UserDTO struct {
	ID               uuid.UUID  `json:"id"`
	Username         string     `json:"username"`
	ExternalProvider *string    `json:"external_provider,omitempty"`
	LastSeenAt       *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreatedUserDTO bundles the new user with its access token.
type CreatedUserDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func toUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:               user.ID,
		Username:         user.Username,
		ExternalProvider: user.ExternalProvider,
		LastSeenAt:       user.LastSeenAt,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
