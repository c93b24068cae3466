package organizations

import (
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
)

// OrganizationDTO is the organization payload returned to clients.
type OrganizationDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	ImageURL  *string     `json:"image_url,omitempty"`
	Members   []MemberDTO `json:"members,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// MemberDTO captures one membership with its role and approval status.
type MemberDTO struct {
	UserID    uuid.UUID  `json:"user_id"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	InvitedBy *uuid.UUID `json:"invited_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toOrganizationDTO(org *models.Organization) OrganizationDTO {
	dto := OrganizationDTO{
		ID:        org.ID,
		Name:      org.Name,
		ImageURL:  org.ImageURL,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
	for _, member := range org.Members {
		dto.Members = append(dto.Members, toMemberDTO(member))
	}
	return dto
}

func toMemberDTO(member models.OrganizationMember) MemberDTO {
	return MemberDTO{
		UserID:    member.UserID,
		Role:      member.Role.String(),
		Status:    member.Status.String(),
		InvitedBy: member.InvitedBy,
		CreatedAt: member.CreatedAt,
	}
}
