package userorders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/internal/stock"
	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

// Service exposes user order operations.
type Service interface {
	GetUserOrder(ctx context.Context, id uuid.UUID) (*UserOrderDTO, error)
	GetByGroupAndUser(ctx context.Context, groupOrderID, userID uuid.UUID) (*UserOrderDTO, error)
	Upsert(ctx context.Context, groupOrderID, userID uuid.UUID, items types.OrderItems) (*UserOrderDTO, error)
	Delete(ctx context.Context, groupOrderID, userID uuid.UUID) error
}

type userOrderRepo interface {
	Create(ctx context.Context, order *models.UserOrder) (*models.UserOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.UserOrder, error)
	FindByGroupAndUser(ctx context.Context, groupOrderID, userID uuid.UUID) (*models.UserOrder, error)
	DeleteByGroupAndUser(ctx context.Context, groupOrderID, userID uuid.UUID) error
}

type groupOrderLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error)
}

type snapshotLoader interface {
	Snapshot(ctx context.Context) (*stock.Snapshot, error)
}

type service struct {
	repo        userOrderRepo
	groupOrders groupOrderLoader
	stock       snapshotLoader
	now         func() time.Time
}

// NewService constructs a user order service instance.
func NewService(repo userOrderRepo, groupOrders groupOrderLoader, stockSvc snapshotLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user order repository required")
	}
	if groupOrders == nil {
		return nil, fmt.Errorf("group order loader required")
	}
	if stockSvc == nil {
		return nil, fmt.Errorf("stock service required")
	}
	return &service{
		repo:        repo,
		groupOrders: groupOrders,
		stock:       stockSvc,
		now:         time.Now,
	}, nil
}

// GetUserOrder loads one order by its ID.
func (s *service) GetUserOrder(ctx context.Context, id uuid.UUID) (*UserOrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user order")
	}
	dto := ToUserOrderDTO(order)
	return &dto, nil
}

// GetByGroupAndUser loads the order one user placed in one group order.
func (s *service) GetByGroupAndUser(ctx context.Context, groupOrderID, userID uuid.UUID) (*UserOrderDTO, error) {
	order, err := s.repo.FindByGroupAndUser(ctx, groupOrderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user order")
	}
	dto := ToUserOrderDTO(order)
	return &dto, nil
}

// Upsert creates or replaces the user's order in the group order. Editing
// is delete-then-recreate: a failed delete means there was nothing to
// replace, so it is swallowed and creation proceeds.
func (s *service) Upsert(ctx context.Context, groupOrderID, userID uuid.UUID, items types.OrderItems) (*UserOrderDTO, error) {
	groupOrder, err := s.loadGroupOrder(ctx, groupOrderID)
	if err != nil {
		return nil, err
	}
	if !groupOrder.AcceptsUserOrders(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "group order is not accepting orders")
	}

	snapshot, err := s.stock.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeItems(items, snapshot)
	if err != nil {
		return nil, err
	}

	_ = s.repo.DeleteByGroupAndUser(ctx, groupOrderID, userID)

	created, err := s.repo.Create(ctx, &models.UserOrder{
		GroupOrderID: groupOrderID,
		UserID:       userID,
		Items:        normalized,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_user_orders_group_user") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user order already exists for this group order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user order")
	}

	dto := ToUserOrderDTO(created)
	return &dto, nil
}

// Delete removes the user's own order while the group order still accepts
// changes.
func (s *service) Delete(ctx context.Context, groupOrderID, userID uuid.UUID) error {
	groupOrder, err := s.loadGroupOrder(ctx, groupOrderID)
	if err != nil {
		return err
	}
	if !groupOrder.AcceptsUserOrders(s.now()) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "group order is not accepting orders")
	}

	if err := s.repo.DeleteByGroupAndUser(ctx, groupOrderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user order")
	}
	return nil
}

func (s *service) loadGroupOrder(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	groupOrder, err := s.groupOrders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find group order")
	}
	return groupOrder, nil
}

// normalizeItems validates taco composition against the size limits,
// assigns IDs, and fills prices from the catalog snapshot.
func normalizeItems(items types.OrderItems, snapshot *stock.Snapshot) (types.OrderItems, error) {
	tacos := make([]types.Taco, len(items.Tacos))
	for i, taco := range items.Tacos {
		if !taco.Size.IsValid() {
			return types.OrderItems{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid taco size").
				WithDetails(map[string]string{"size": taco.Size.String()})
		}
		if taco.Kind == "" {
			taco.Kind = enums.TacoKindRegular
		}
		if !taco.Kind.IsValid() {
			return types.OrderItems{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid taco kind").
				WithDetails(map[string]string{"kind": taco.Kind.String()})
		}
		if taco.ID == uuid.Nil {
			taco.ID = uuid.New()
		}

		switch taco.Kind {
		case enums.TacoKindMystery:
			// Ingredients stay hidden until the reveal; charge the base
			// size price meanwhile.
			taco.Meats = nil
			taco.Sauces = nil
			taco.Garnitures = nil
			base := taco.Size.BasePriceCents()
			taco.PriceCents = &base
		default:
			if len(taco.Meats) > taco.Size.MaxMeats() {
				return types.OrderItems{}, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("size %s allows at most %d meats", taco.Size, taco.Size.MaxMeats()))
			}
			if len(taco.Sauces) > taco.Size.MaxSauces() {
				return types.OrderItems{}, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("size %s allows at most %d sauces", taco.Size, taco.Size.MaxSauces()))
			}
			price := ComputeTacoPriceCents(taco, snapshot)
			taco.PriceCents = &price
		}
		tacos[i] = taco
	}

	out := types.OrderItems{
		Extras:   fillLineItems(items.Extras, snapshot),
		Drinks:   fillLineItems(items.Drinks, snapshot),
		Desserts: fillLineItems(items.Desserts, snapshot),
	}
	if len(tacos) > 0 {
		out.Tacos = tacos
	}
	return out, nil
}

// fillLineItems resolves price and name from the catalog for items that
// reference a stock ID without carrying their own values.
func fillLineItems(items []types.LineItem, snapshot *stock.Snapshot) []types.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]types.LineItem, len(items))
	for i, item := range items {
		if item.ID != nil {
			if stockItem, ok := snapshot.ByID[*item.ID]; ok {
				if item.PriceCents == nil {
					price := stockItem.PriceCents
					item.PriceCents = &price
				}
				if item.Name == "" {
					item.Name = stockItem.Name
				}
			}
		}
		out[i] = item
	}
	return out
}
