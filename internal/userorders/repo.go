package userorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

// Repository handles user order persistence.
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

// Create inserts the user order. The unique index on
// (group_order_id, user_id) rejects a concurrent duplicate.
func (r *Repository) Create(ctx context.Context, order *models.UserOrder) (*models.UserOrder, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads one user order by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.UserOrder, error) {
	var order models.UserOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByGroupAndUser loads the order one user placed in one group order.
func (r *Repository) FindByGroupAndUser(ctx context.Context, groupOrderID, userID uuid.UUID) (*models.UserOrder, error) {
	var order models.UserOrder
	if err := r.db.WithContext(ctx).
		First(&order, "group_order_id = ? AND user_id = ?", groupOrderID, userID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByGroupOrder returns every user order attached to the group order.
func (r *Repository) ListByGroupOrder(ctx context.Context, groupOrderID uuid.UUID) ([]models.UserOrder, error) {
	var orders []models.UserOrder
	if err := r.db.WithContext(ctx).
		Where("group_order_id = ?", groupOrderID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteByGroupAndUser removes the user's order from the group order.
func (r *Repository) DeleteByGroupAndUser(ctx context.Context, groupOrderID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("group_order_id = ? AND user_id = ?", groupOrderID, userID).
		Delete(&models.UserOrder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateItems replaces the order's item payload.
func (r *Repository) UpdateItems(ctx context.Context, id uuid.UUID, items types.OrderItems) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserOrder{}).
		Where("id = ?", id).
		Update("items", items)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
