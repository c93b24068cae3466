package grouporders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	"github.com/tacocrew/tacocrew-backend/pkg/pagination"
)

// Repository handles group order persistence.
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

// Create inserts the group order.
func (r *Repository) Create(ctx context.Context, order *models.GroupOrder) (*models.GroupOrder, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads the group order without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	var order models.GroupOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDWithUserOrders loads the group order with all attached user orders.
func (r *Repository) FindByIDWithUserOrders(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	var order models.GroupOrder
	if err := r.db.WithContext(ctx).
		Preload("UserOrders").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByOrganization returns the organization's group orders newest first,
// keyset-paginated on (created_at, id).
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.GroupOrder, error) {
	query := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var orders []models.GroupOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus transitions the group order from one status to another. The
// guard on the previous status makes concurrent transitions lose cleanly.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.GroupOrderStatus, submittedAt *time.Time) (bool, error) {
	updates := map[string]any{"status": to}
	if submittedAt != nil {
		updates["submitted_at"] = *submittedAt
	}
	result := r.db.WithContext(ctx).
		Model(&models.GroupOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the group order. User orders cascade at the schema level;
// the explicit delete keeps sqlite test databases honest too.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_order_id = ?", id).Delete(&models.UserOrder{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.GroupOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListExpiredOpen returns open group orders whose window already ended.
func (r *Repository) ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]models.GroupOrder, error) {
	var orders []models.GroupOrder
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", enums.GroupOrderStatusOpen, now).
		Order("end_date ASC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
