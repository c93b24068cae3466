package organizations

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

func setupOrgsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	organizations := `
CREATE TABLE IF NOT EXISTS organizations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	members := `
CREATE TABLE IF NOT EXISTS organization_members (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'member',
  status TEXT NOT NULL DEFAULT 'pending',
  invited_by TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (organization_id, user_id)
);`
	require.NoError(t, conn.Exec(organizations).Error)
	require.NoError(t, conn.Exec(members).Error)
	return conn
}

func mustCreateOrg(t *testing.T, repo *Repository, name string) *models.Organization {
	t.Helper()
	org, err := repo.Create(t.Context(), &models.Organization{Name: name})
	require.NoError(t, err)
	return org
}

func mustCreateMember(t *testing.T, repo *Repository, orgID, userID uuid.UUID, role enums.MemberRole, status enums.MembershipStatus) *models.OrganizationMember {
	t.Helper()
	member, err := repo.CreateMember(t.Context(), &models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		Status:         status,
	})
	require.NoError(t, err)
	return member
}

func TestRepositoryFindByIDPreloadsMembers(t *testing.T) {
	repo := NewRepository(setupOrgsTestDB(t))
	org := mustCreateOrg(t, repo, "Taco Tuesday Crew")
	mustCreateMember(t, repo, org.ID, uuid.New(), enums.MemberRoleAdmin, enums.MembershipStatusActive)
	mustCreateMember(t, repo, org.ID, uuid.New(), enums.MemberRoleMember, enums.MembershipStatusPending)

	found, err := repo.FindByID(t.Context(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taco Tuesday Crew", found.Name)
	assert.Len(t, found.Members, 2)
}

func TestRepositoryListByUserFiltersActive(t *testing.T) {
	repo := NewRepository(setupOrgsTestDB(t))
	userID := uuid.New()

	active := mustCreateOrg(t, repo, "Active Org")
	mustCreateMember(t, repo, active.ID, userID, enums.MemberRoleMember, enums.MembershipStatusActive)

	pending := mustCreateOrg(t, repo, "Pending Org")
	mustCreateMember(t, repo, pending.ID, userID, enums.MemberRoleMember, enums.MembershipStatusPending)

	orgs, err := repo.ListByUser(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, active.ID, orgs[0].ID)
}

func TestRepositoryDuplicateMembership(t *testing.T) {
	repo := NewRepository(setupOrgsTestDB(t))
	org := mustCreateOrg(t, repo, "Crew")
	userID := uuid.New()
	mustCreateMember(t, repo, org.ID, userID, enums.MemberRoleMember, enums.MembershipStatusPending)

	_, err := repo.CreateMember(t.Context(), &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}

func TestRepositoryUserHasRole(t *testing.T) {
	repo := NewRepository(setupOrgsTestDB(t))
	org := mustCreateOrg(t, repo, "Crew")
	adminID := uuid.New()
	pendingAdminID := uuid.New()
	mustCreateMember(t, repo, org.ID, adminID, enums.MemberRoleAdmin, enums.MembershipStatusActive)
	mustCreateMember(t, repo, org.ID, pendingAdminID, enums.MemberRoleAdmin, enums.MembershipStatusPending)

	ok, err := repo.UserHasRole(t.Context(), org.ID, adminID, enums.MemberRoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UserHasRole(t.Context(), org.ID, pendingAdminID, enums.MemberRoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok, "pending membership must not grant the role")

	ok, err = repo.UserHasRole(t.Context(), org.ID, adminID)
	require.NoError(t, err)
	assert.False(t, ok, "no roles requested means no match")
}

func TestRepositoryMemberLifecycle(t *testing.T) {
	repo := NewRepository(setupOrgsTestDB(t))
	org := mustCreateOrg(t, repo, "Crew")
	userID := uuid.New()
	mustCreateMember(t, repo, org.ID, userID, enums.MemberRoleMember, enums.MembershipStatusPending)

	require.NoError(t, repo.UpdateMemberStatus(t.Context(), org.ID, userID, enums.MembershipStatusActive))

	member, err := repo.FindMember(t.Context(), org.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, enums.MembershipStatusActive, member.Status)

	require.NoError(t, repo.DeleteMember(t.Context(), org.ID, userID))
	err = repo.DeleteMember(t.Context(), org.ID, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
