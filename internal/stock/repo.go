package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
)

// Repository handles stock catalog persistence.
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

// List returns the full catalog ordered by category then code.
func (r *Repository) List(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Order("category ASC, code ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAvailable returns catalog entries currently marked available.
func (r *Repository) ListAvailable(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category ASC, code ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIDs loads the given catalog entries. Missing IDs are simply absent
// from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.StockItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SetAvailability flips the availability flag for one catalog entry.
func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("id = ?", id).
		Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnsureCatalog upserts the given catalog entries by their derived IDs.
// New entries are inserted; existing rows get code, name, category, and
// price refreshed while the availability flag is left as operators set it.
func (r *Repository) EnsureCatalog(ctx context.Context, entries []CatalogEntry) error {
	tx := r.db.WithContext(ctx)
	for _, entry := range entries {
		row := entry.Model()

		var existing models.StockItem
		err := tx.First(&existing, "id = ?", row.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.StockItem{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"code":        row.Code,
				"name":        row.Name,
				"category":    row.Category,
				"price_cents": row.PriceCents,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}
