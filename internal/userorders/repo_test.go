package userorders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

func setupUserOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
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
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func TestRepositoryUniquePerGroupAndUser(t *testing.T) {
	repo := NewRepository(setupUserOrdersTestDB(t))
	ctx := t.Context()
	groupOrderID := uuid.New()
	userID := uuid.New()

	_, err := repo.Create(ctx, &models.UserOrder{GroupOrderID: groupOrderID, UserID: userID})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.UserOrder{GroupOrderID: groupOrderID, UserID: userID})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))

	// Same user in another group order is fine.
	_, err = repo.Create(ctx, &models.UserOrder{GroupOrderID: uuid.New(), UserID: userID})
	require.NoError(t, err)
}

func TestRepositoryItemsRoundTrip(t *testing.T) {
	repo := NewRepository(setupUserOrdersTestDB(t))
	ctx := t.Context()

	items := types.OrderItems{
		Drinks: []types.LineItem{{Name: "Coca-Cola 33cl", PriceCents: intPtr(150), Qty: intPtr(2)}},
	}
	created, err := repo.Create(ctx, &models.UserOrder{
		GroupOrderID: uuid.New(),
		UserID:       uuid.New(),
		Items:        items,
	})
	require.NoError(t, err)

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items.Drinks, 1)
	assert.Equal(t, "Coca-Cola 33cl", loaded.Items.Drinks[0].Name)
	assert.Equal(t, 150, *loaded.Items.Drinks[0].PriceCents)
}

func TestRepositoryUpdateItems(t *testing.T) {
	repo := NewRepository(setupUserOrdersTestDB(t))
	ctx := t.Context()

	created, err := repo.Create(ctx, &models.UserOrder{GroupOrderID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	updated := types.OrderItems{
		Desserts: []types.LineItem{{Name: "Tiramisu", PriceCents: intPtr(300)}},
	}
	require.NoError(t, repo.UpdateItems(ctx, created.ID, updated))

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items.Desserts, 1)
	assert.Equal(t, "Tiramisu", loaded.Items.Desserts[0].Name)

	err = repo.UpdateItems(ctx, uuid.New(), updated)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteByGroupAndUser(t *testing.T) {
	repo := NewRepository(setupUserOrdersTestDB(t))
	ctx := t.Context()
	groupOrderID := uuid.New()
	userID := uuid.New()

	_, err := repo.Create(ctx, &models.UserOrder{GroupOrderID: groupOrderID, UserID: userID})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByGroupAndUser(ctx, groupOrderID, userID))
	err = repo.DeleteByGroupAndUser(ctx, groupOrderID, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByGroupAndUser(ctx, groupOrderID, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByGroupOrder(t *testing.T) {
	repo := NewRepository(setupUserOrdersTestDB(t))
	ctx := t.Context()
	groupOrderID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.UserOrder{GroupOrderID: groupOrderID, UserID: uuid.New()})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &models.UserOrder{GroupOrderID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	orders, err := repo.ListByGroupOrder(ctx, groupOrderID)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}
