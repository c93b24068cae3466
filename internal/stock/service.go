package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
)

// Service exposes catalog read operations.
type Service interface {
	GetStock(ctx context.Context) (*StockDTO, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot holds the available catalog indexed for order processing.
type Snapshot struct {
	ByCategory map[enums.StockCategory][]models.StockItem
	ByID       map[uuid.UUID]models.StockItem
}

// Available returns the available items of one category, in catalog order.
func (s *Snapshot) Available(category enums.StockCategory) []models.StockItem {
	if s == nil {
		return nil
	}
	return s.ByCategory[category]
}

// PriceCents returns the price of the given item, or 0 when unknown.
func (s *Snapshot) PriceCents(id uuid.UUID) int {
	if s == nil {
		return 0
	}
	return s.ByID[id].PriceCents
}

type catalogReader interface {
	List(ctx context.Context) ([]models.StockItem, error)
	ListAvailable(ctx context.Context) ([]models.StockItem, error)
}

type service struct {
	repo catalogReader
}

// NewService constructs a stock service instance.
func NewService(repo catalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	return &service{repo: repo}, nil
}

// GetStock returns the full catalog grouped by category plus taco sizes.
func (s *service) GetStock(ctx context.Context) (*StockDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
	}

	dto := &StockDTO{
		Meats:      []StockItemDTO{},
		Sauces:     []StockItemDTO{},
		Garnitures: []StockItemDTO{},
		Extras:     []StockItemDTO{},
		Drinks:     []StockItemDTO{},
		Desserts:   []StockItemDTO{},
		TacoSizes:  tacoSizeDTOs(),
	}
	for _, item := range items {
		entry := toItemDTO(item)
		switch item.Category {
		case enums.StockCategoryMeat:
			dto.Meats = append(dto.Meats, entry)
		case enums.StockCategorySauce:
			dto.Sauces = append(dto.Sauces, entry)
		case enums.StockCategoryGarniture:
			dto.Garnitures = append(dto.Garnitures, entry)
		case enums.StockCategoryExtra:
			dto.Extras = append(dto.Extras, entry)
		case enums.StockCategoryDrink:
			dto.Drinks = append(dto.Drinks, entry)
		case enums.StockCategoryDessert:
			dto.Desserts = append(dto.Desserts, entry)
		}
	}
	return dto, nil
}

// Snapshot loads the available catalog indexed by category and by ID.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	items, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available stock")
	}

	snapshot := &Snapshot{
		ByCategory: make(map[enums.StockCategory][]models.StockItem),
		ByID:       make(map[uuid.UUID]models.StockItem, len(items)),
	}
	for _, item := range items {
		snapshot.ByCategory[item.Category] = append(snapshot.ByCategory[item.Category], item)
		snapshot.ByID[item.ID] = item
	}
	return snapshot, nil
}
