package organizations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// Repository handles organization and membership persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the organization.
func (r *Repository) Create(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return nil, err
	}
	return org, nil
}

// FindByID loads the organization with its members.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// ListByUser returns organizations where the user has an active membership,
// newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := r.db.WithContext(ctx).
		Joins("JOIN organization_members om ON om.organization_id = organizations.id").
		Where("om.user_id = ? AND om.status = ?", userID, enums.MembershipStatusActive).
		Order("organizations.created_at DESC").
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// CreateMember inserts the membership row. The unique index on
// (organization_id, user_id) surfaces duplicate joins.
func (r *Repository) CreateMember(ctx context.Context, member *models.OrganizationMember) (*models.OrganizationMember, error) {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// FindMember loads one membership by organization and user.
func (r *Repository) FindMember(ctx context.Context, orgID, userID uuid.UUID) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.WithContext(ctx).
		First(&member, "organization_id = ? AND user_id = ?", orgID, userID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberStatus moves the membership to the given status.
func (r *Repository) UpdateMemberStatus(ctx context.Context, orgID, userID uuid.UUID, status enums.MembershipStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMember removes the membership row.
func (r *Repository) DeleteMember(ctx context.Context, orgID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.OrganizationMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UserHasRole reports whether the user holds one of the roles with an
// active membership in the organization.
func (r *Repository) UserHasRole(ctx context.Context, orgID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ? AND status = ? AND role IN ?",
			orgID, userID, enums.MembershipStatusActive, roles).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsActiveMember reports whether the user has an active membership in the
// organization, regardless of role.
func (r *Repository) IsActiveMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ? AND status = ?",
			orgID, userID, enums.MembershipStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
