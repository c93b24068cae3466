package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/auth"
	"github.com/tacocrew/tacocrew-backend/pkg/config"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
)

type stubUserRepo struct {
	createErr error
	users     map[uuid.UUID]*models.User
	byName    map[string]*models.User
	touched   []uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:  map[uuid.UUID]*models.User{},
		byName: map[string]*models.User{},
	}
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	s.byName[user.Username] = user
	return user, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.byName[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) TouchLastSeen(_ context.Context, id uuid.UUID, _ time.Time) error {
	s.touched = append(s.touched, id)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "tacocrew-test",
		ExpirationMinutes: 15,
	}
}

func TestCreateUserMintsToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	created, err := svc.CreateUser(t.Context(), CreateUserInput{Username: "marta"})
	require.NoError(t, err)
	assert.Equal(t, "marta", created.User.Username)
	assert.NotEqual(t, uuid.Nil, created.User.ID)

	claims, err := auth.ParseAccessToken(testJWTConfig(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, claims.UserID)
	assert.Equal(t, "marta", claims.Username)
}

func TestCreateUserRejectsShortUsername(t *testing.T) {
	svc, err := NewService(newStubUserRepo(), testJWTConfig())
	require.NoError(t, err)

	_, err = svc.CreateUser(t.Context(), CreateUserInput{Username: " a "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"}
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	_, err = svc.CreateUser(t.Context(), CreateUserInput{Username: "marta"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateUserRepoFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("connection refused")
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	_, err = svc.CreateUser(t.Context(), CreateUserInput{Username: "marta"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestGetUserNotFound(t *testing.T) {
	svc, err := NewService(newStubUserRepo(), testJWTConfig())
	require.NoError(t, err)

	_, err = svc.GetUser(t.Context(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetUserByUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	created, err := svc.CreateUser(t.Context(), CreateUserInput{Username: "jb"})
	require.NoError(t, err)

	found, err := svc.GetUserByUsername(t.Context(), " jb ")
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, found.ID)
}
