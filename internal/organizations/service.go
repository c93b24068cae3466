package organizations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
)

// Service exposes organization and membership operations.
type Service interface {
	CreateOrganization(ctx context.Context, creatorID uuid.UUID, input CreateOrganizationInput) (*OrganizationDTO, error)
	GetOrganization(ctx context.Context, id uuid.UUID) (*OrganizationDTO, error)
	ListMyOrganizations(ctx context.Context, userID uuid.UUID) ([]OrganizationDTO, error)
	Join(ctx context.Context, orgID, userID uuid.UUID) (*MemberDTO, error)
	ApproveMember(ctx context.Context, orgID, actorID, memberUserID uuid.UUID) error
	RemoveMember(ctx context.Context, orgID, actorID, memberUserID uuid.UUID) error
}

// CreateOrganizationInput holds the validated payload to create an organization.
type CreateOrganizationInput struct {
	Name     string
	ImageURL *string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an organization service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("organization repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateOrganization creates the organization and makes the creator an
// active admin member, atomically.
func (s *service) CreateOrganization(ctx context.Context, creatorID uuid.UUID, input CreateOrganizationInput) (*OrganizationDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "organization name is required")
	}

	var created *models.Organization
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		org, err := repo.Create(ctx, &models.Organization{
			Name:     name,
			ImageURL: input.ImageURL,
		})
		if err != nil {
			return err
		}

		_, err = repo.CreateMember(ctx, &models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         creatorID,
			Role:           enums.MemberRoleAdmin,
			Status:         enums.MembershipStatusActive,
		})
		if err != nil {
			return err
		}

		created = org
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create organization")
	}

	return s.GetOrganization(ctx, created.ID)
}

// GetOrganization loads the organization with its members.
func (s *service) GetOrganization(ctx context.Context, id uuid.UUID) (*OrganizationDTO, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find organization")
	}
	dto := toOrganizationDTO(org)
	return &dto, nil
}

// ListMyOrganizations returns the organizations the user actively belongs to.
func (s *service) ListMyOrganizations(ctx context.Context, userID uuid.UUID) ([]OrganizationDTO, error) {
	orgs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list organizations")
	}
	out := make([]OrganizationDTO, 0, len(orgs))
	for i := range orgs {
		out = append(out, toOrganizationDTO(&orgs[i]))
	}
	return out, nil
}

// Join requests membership in the organization. The request stays pending
// until an admin approves it.
func (s *service) Join(ctx context.Context, orgID, userID uuid.UUID) (*MemberDTO, error) {
	if _, err := s.repo.FindByID(ctx, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find organization")
	}

	member, err := s.repo.CreateMember(ctx, &models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           enums.MemberRoleMember,
		Status:         enums.MembershipStatusPending,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_org_members_org_user") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "membership already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "join organization")
	}

	dto := toMemberDTO(*member)
	return &dto, nil
}

// ApproveMember moves a pending membership to active. Admin only.
func (s *service) ApproveMember(ctx context.Context, orgID, actorID, memberUserID uuid.UUID) error {
	if err := s.requireAdmin(ctx, orgID, actorID); err != nil {
		return err
	}

	member, err := s.repo.FindMember(ctx, orgID, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find membership")
	}
	if member.Status == enums.MembershipStatusActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "membership already active")
	}

	if err := s.repo.UpdateMemberStatus(ctx, orgID, memberUserID, enums.MembershipStatusActive); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve membership")
	}
	return nil
}

// RemoveMember deletes the membership. Admin only; admins cannot remove
// themselves so an organization always keeps at least one admin.
func (s *service) RemoveMember(ctx context.Context, orgID, actorID, memberUserID uuid.UUID) error {
	if err := s.requireAdmin(ctx, orgID, actorID); err != nil {
		return err
	}
	if actorID == memberUserID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "admins cannot remove themselves")
	}

	if err := s.repo.DeleteMember(ctx, orgID, memberUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove membership")
	}
	return nil
}

func (s *service) requireAdmin(ctx context.Context, orgID, actorID uuid.UUID) error {
	ok, err := s.repo.UserHasRole(ctx, orgID, actorID, enums.MemberRoleAdmin)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin role")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}
