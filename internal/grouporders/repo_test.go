package grouporders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	"github.com/tacocrew/tacocrew-backend/pkg/pagination"
)

func setupGroupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	groupOrders := `
CREATE TABLE IF NOT EXISTS group_orders (
  id TEXT PRIMARY KEY,
  name TEXT,
  organization_id TEXT NOT NULL,
  leader_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open',
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  submitted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	userOrders := `
CREATE TABLE IF NOT EXISTS user_orders (
  id TEXT PRIMARY KEY,
  group_order_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  items TEXT,
  reimbursed INTEGER NOT NULL DEFAULT 0,
  paid_by_user INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (group_order_id, user_id)
);`
	require.NoError(t, conn.Exec(groupOrders).Error)
	require.NoError(t, conn.Exec(userOrders).Error)
	return conn
}

func mustCreateGroupOrder(t *testing.T, repo *Repository, orgID, leaderID uuid.UUID, start, end time.Time) *models.GroupOrder {
	t.Helper()
	order, err := repo.Create(t.Context(), &models.GroupOrder{
		OrganizationID: orgID,
		LeaderID:       leaderID,
		Status:         enums.GroupOrderStatusOpen,
		StartDate:      start,
		EndDate:        end,
	})
	require.NoError(t, err)
	return order
}

func TestRepositoryDeleteCascadesUserOrders(t *testing.T) {
	conn := setupGroupOrdersTestDB(t)
	repo := NewRepository(conn)
	now := time.Now()

	order := mustCreateGroupOrder(t, repo, uuid.New(), uuid.New(), now, now.Add(time.Hour))
	require.NoError(t, conn.Create(&models.UserOrder{
		ID:           uuid.New(),
		GroupOrderID: order.ID,
		UserID:       uuid.New(),
	}).Error)

	require.NoError(t, repo.Delete(t.Context(), order.ID))

	_, err := repo.FindByID(t.Context(), order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, conn.Model(&models.UserOrder{}).Where("group_order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = repo.Delete(t.Context(), order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateStatusGuardsPreviousStatus(t *testing.T) {
	repo := NewRepository(setupGroupOrdersTestDB(t))
	now := time.Now()
	order := mustCreateGroupOrder(t, repo, uuid.New(), uuid.New(), now, now.Add(time.Hour))

	at := now.UTC()
	changed, err := repo.UpdateStatus(t.Context(), order.ID,
		enums.GroupOrderStatusOpen, enums.GroupOrderStatusSubmitted, &at)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UpdateStatus(t.Context(), order.ID,
		enums.GroupOrderStatusOpen, enums.GroupOrderStatusSubmitted, &at)
	require.NoError(t, err)
	assert.False(t, changed, "second transition must lose the guard")

	reloaded, err := repo.FindByID(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.GroupOrderStatusSubmitted, reloaded.Status)
	require.NotNil(t, reloaded.SubmittedAt)
}

func TestRepositoryListByOrganizationPaginates(t *testing.T) {
	repo := NewRepository(setupGroupOrdersTestDB(t))
	orgID := uuid.New()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		order := &models.GroupOrder{
			ID:             uuid.New(),
			OrganizationID: orgID,
			LeaderID:       uuid.New(),
			Status:         enums.GroupOrderStatusOpen,
			StartDate:      base,
			EndDate:        base.Add(time.Hour),
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		_, err := repo.Create(t.Context(), order)
		require.NoError(t, err)
	}

	first, err := repo.ListByOrganization(t.Context(), orgID, 3, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.True(t, first[0].CreatedAt.After(first[2].CreatedAt))

	cursor := &pagination.Cursor{CreatedAt: first[2].CreatedAt, ID: first[2].ID}
	second, err := repo.ListByOrganization(t.Context(), orgID, 3, cursor)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	for _, order := range second {
		assert.True(t, order.CreatedAt.Before(first[2].CreatedAt))
	}
}

func TestRepositoryListExpiredOpen(t *testing.T) {
	repo := NewRepository(setupGroupOrdersTestDB(t))
	now := time.Now()

	expired := mustCreateGroupOrder(t, repo, uuid.New(), uuid.New(), now.Add(-2*time.Hour), now.Add(-time.Hour))
	mustCreateGroupOrder(t, repo, uuid.New(), uuid.New(), now.Add(-time.Hour), now.Add(time.Hour))

	submitted := mustCreateGroupOrder(t, repo, uuid.New(), uuid.New(), now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	at := now.UTC()
	_, err := repo.UpdateStatus(t.Context(), submitted.ID,
		enums.GroupOrderStatusOpen, enums.GroupOrderStatusSubmitted, &at)
	require.NoError(t, err)

	orders, err := repo.ListExpiredOpen(t.Context(), now, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, expired.ID, orders[0].ID)
}
