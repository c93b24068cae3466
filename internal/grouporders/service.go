package grouporders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tacocrew/tacocrew-backend/internal/stock"
	"github.com/tacocrew/tacocrew-backend/internal/userorders"
	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
	"github.com/tacocrew/tacocrew-backend/pkg/pagination"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

// Service exposes group order lifecycle operations.
type Service interface {
	Create(ctx context.Context, leaderID uuid.UUID, input CreateGroupOrderInput) (*GroupOrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*GroupOrderDTO, error)
	GetWithUserOrders(ctx context.Context, id uuid.UUID) (*GroupOrderDetailDTO, error)
	List(ctx context.Context, orgID uuid.UUID, params pagination.Params) (*GroupOrderListDTO, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	Submit(ctx context.Context, id, actorID uuid.UUID) (*GroupOrderDetailDTO, error)
}

// CreateGroupOrderInput holds the validated payload to create a group order.
type CreateGroupOrderInput struct {
	Name           *string
	OrganizationID uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
}

type membershipChecker interface {
	IsActiveMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
}

type snapshotLoader interface {
	Snapshot(ctx context.Context) (*stock.Snapshot, error)
}

type service struct {
	repo       *Repository
	userOrders *userorders.Repository
	dbClient   *db.Client
	members    membershipChecker
	stock      snapshotLoader
	now        func() time.Time
}

// NewService constructs a group order service instance.
func NewService(repo *Repository, userOrderRepo *userorders.Repository, dbClient *db.Client, members membershipChecker, stockSvc snapshotLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("group order repository required")
	}
	if userOrderRepo == nil {
		return nil, fmt.Errorf("user order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if members == nil {
		return nil, fmt.Errorf("membership checker required")
	}
	if stockSvc == nil {
		return nil, fmt.Errorf("stock service required")
	}
	return &service{
		repo:       repo,
		userOrders: userOrderRepo,
		dbClient:   dbClient,
		members:    members,
		stock:      stockSvc,
		now:        time.Now,
	}, nil
}

// Create opens a new group order led by the caller.
func (s *service) Create(ctx context.Context, leaderID uuid.UUID, input CreateGroupOrderInput) (*GroupOrderDTO, error) {
	if !input.StartDate.Before(input.EndDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must be before end date")
	}

	ok, err := s.members.IsActiveMember(ctx, input.OrganizationID, leaderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "active membership required")
	}

	created, err := s.repo.Create(ctx, &models.GroupOrder{
		Name:           input.Name,
		OrganizationID: input.OrganizationID,
		LeaderID:       leaderID,
		Status:         enums.GroupOrderStatusOpen,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create group order")
	}

	dto := toGroupOrderDTO(created)
	return &dto, nil
}

// Get loads one group order by ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*GroupOrderDTO, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toGroupOrderDTO(order)
	return &dto, nil
}

// GetWithUserOrders loads the group order together with all its user
// orders and the aggregate total.
func (s *service) GetWithUserOrders(ctx context.Context, id uuid.UUID) (*GroupOrderDetailDTO, error) {
	order, err := s.repo.FindByIDWithUserOrders(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find group order")
	}
	detail := toGroupOrderDetailDTO(order)
	return &detail, nil
}

// List pages through the organization's group orders, newest first.
func (s *service) List(ctx context.Context, orgID uuid.UUID, params pagination.Params) (*GroupOrderListDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	orders, err := s.repo.ListByOrganization(ctx, orgID, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list group orders")
	}

	result := &GroupOrderListDTO{Items: []GroupOrderDTO{}}
	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}
	for i := range orders {
		result.Items = append(result.Items, toGroupOrderDTO(&orders[i]))
	}
	if hasMore {
		last := orders[len(orders)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &next
	}
	return result, nil
}

// Delete removes the group order and its user orders. Leader only.
func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	order, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if order.LeaderID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the leader can delete a group order")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete group order")
	}
	return nil
}

// Submit locks the group order. Every mystery taco across its user orders
// gets revealed with the current stock snapshot, inside one transaction
// with the status flip so a failed reveal leaves the order open.
func (s *service) Submit(ctx context.Context, id, actorID uuid.UUID) (*GroupOrderDetailDTO, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.LeaderID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the leader can submit a group order")
	}
	if order.Status != enums.GroupOrderStatusOpen {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "group order is not open")
	}

	snapshot, err := s.stock.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now().UTC()
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		changed, err := s.repo.WithTx(tx).UpdateStatus(ctx, id,
			enums.GroupOrderStatusOpen, enums.GroupOrderStatusSubmitted, &submittedAt)
		if err != nil {
			return err
		}
		if !changed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "group order is not open")
		}

		uoRepo := s.userOrders.WithTx(tx)
		orders, err := uoRepo.ListByGroupOrder(ctx, id)
		if err != nil {
			return err
		}
		for i := range orders {
			if !hasMysteryTaco(orders[i].Items.Tacos) {
				continue
			}
			revealed := userorders.RevealOrderItems(orders[i].Items, snapshot)
			if err := uoRepo.UpdateItems(ctx, orders[i].ID, revealed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit group order")
	}

	return s.GetWithUserOrders(ctx, id)
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find group order")
	}
	return order, nil
}

func hasMysteryTaco(tacos []types.Taco) bool {
	for _, taco := range tacos {
		if taco.Kind == enums.TacoKindMystery {
			return true
		}
	}
	return false
}
