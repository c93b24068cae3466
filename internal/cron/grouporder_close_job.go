package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
)

const closeBatchSize = 100

type expiredGroupOrderStore interface {
	ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]models.GroupOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.GroupOrderStatus, submittedAt *time.Time) (bool, error)
}

// GroupOrderCloseJob closes open group orders whose window already ended.
// Orders the leader never submitted simply expire; submitted orders keep
// their status until fulfillment closes them out of band.
type GroupOrderCloseJob struct {
	store expiredGroupOrderStore
	logg  *logger.Logger
	now   func() time.Time
}

// NewGroupOrderCloseJob builds the expiry sweep job.
func NewGroupOrderCloseJob(store expiredGroupOrderStore, logg *logger.Logger) (*GroupOrderCloseJob, error) {
	if store == nil {
		return nil, fmt.Errorf("group order store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &GroupOrderCloseJob{store: store, logg: logg, now: time.Now}, nil
}

// Name identifies the job in logs and metrics.
func (j *GroupOrderCloseJob) Name() string { return "group_order_close" }

// Run sweeps expired open group orders in batches.
func (j *GroupOrderCloseJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	closed := 0

	for {
		orders, err := j.store.ListExpiredOpen(ctx, now, closeBatchSize)
		if err != nil {
			return fmt.Errorf("list expired group orders: %w", err)
		}
		if len(orders) == 0 {
			break
		}

		progressed := false
		for _, order := range orders {
			changed, err := j.store.UpdateStatus(ctx, order.ID,
				enums.GroupOrderStatusOpen, enums.GroupOrderStatusClosed, nil)
			if err != nil {
				return fmt.Errorf("close group order %s: %w", order.ID, err)
			}
			if changed {
				closed++
				progressed = true
			}
		}
		// Every candidate lost its status race; nothing left to do.
		if !progressed {
			break
		}
		if len(orders) < closeBatchSize {
			break
		}
	}

	if closed > 0 {
		j.logg.Info(j.logg.WithField(ctx, "closed", closed), "expired group orders closed")
	}
	return nil
}
