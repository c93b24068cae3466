package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/auth"
	"github.com/tacocrew/tacocrew-backend/pkg/config"
	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
)

const minUsernameLength = 2

// Service exposes user account operations.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*CreatedUserDTO, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	GetUserByUsername(ctx context.Context, username string) (*UserDTO, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
}

// CreateUserInput holds the validated payload to create a user.
type CreateUserInput struct {
	Username         string
	ExternalProvider *string
	ExternalSubject  *string
}

type userRepo interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error
}

type service struct {
	repo   userRepo
	jwtCfg config.JWTConfig
	now    func() time.Time
}

// NewService constructs a user service instance.
func NewService(repo userRepo, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{
		repo:   repo,
		jwtCfg: jwtCfg,
		now:    time.Now,
	}, nil
}

// CreateUser registers a new account and mints its access token.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*CreatedUserDTO, error) {
	username := strings.TrimSpace(input.Username)
	if len([]rune(username)) < minUsernameLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username must be at least 2 characters").
			WithDetails(map[string]string{"username": "too short"})
	}

	user := &models.User{
		Username:         username,
		ExternalProvider: input.ExternalProvider,
		ExternalSubject:  input.ExternalSubject,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID:          created.ID,
		Username:        created.Username,
		ExternalSubject: created.ExternalSubject,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &CreatedUserDTO{
		User:  toUserDTO(created),
		Token: token,
	}, nil
}

// GetUser loads one user by ID.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// GetUserByUsername loads one user by its unique username.
func (s *service) GetUserByUsername(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user by username")
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// TouchLastSeen stamps the user's activity time. Failures are not fatal for
// the request that triggered the touch, callers may log and continue.
func (s *service) TouchLastSeen(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.TouchLastSeen(ctx, id, s.now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch last seen")
	}
	return nil
}
