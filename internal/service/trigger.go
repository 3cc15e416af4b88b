// internal/service/trigger.go
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/metrics"
	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/repository"
)

// PublicationTrigger runs after every content save and decides whether a
// newsletter campaign goes out. It is a fire-and-forget boundary: no error
// ever propagates back to the save path, and a panic inside the pipeline is
// recovered and logged.
type PublicationTrigger struct {
	Ledger     repository.NotificationRepositoryInterface
	Dispatcher Dispatcher
	Enabled    bool
	Logger     *zap.Logger
}

// OnSaved is invoked with the item's state after the save and its status
// before it. The previous status is informational only; the ledger is the
// idempotency mechanism, so a row written by anyone else wins the race.
func (t *PublicationTrigger) OnSaved(ctx context.Context, item model.ContentView, previousStatus string) {
	defer func() {
		if r := recover(); r != nil {
			t.Logger.Error("publication trigger panicked",
				zap.String("kind", item.Kind),
				zap.Int64("content_id", item.ID),
				zap.Any("panic", r),
			)
		}
	}()

	if item.Status != model.StatusPublished {
		return
	}
	if !t.Enabled {
		t.Logger.Debug("content notifications disabled, skipping",
			zap.String("kind", item.Kind),
			zap.Int64("content_id", item.ID),
		)
		return
	}

	sent, err := t.Ledger.Has(ctx, item.Kind, item.ID)
	if err != nil {
		t.Logger.Error("failed to check notification ledger",
			zap.String("kind", item.Kind),
			zap.Int64("content_id", item.ID),
			zap.Error(err),
		)
		return
	}
	if sent {
		t.Logger.Debug("notification already recorded, skipping",
			zap.String("kind", item.Kind),
			zap.Int64("content_id", item.ID),
			zap.String("previous_status", previousStatus),
		)
		metrics.IncNotificationSkipped(item.Kind)
		return
	}

	outcome := t.Dispatcher.Dispatch(ctx, item)
	if !outcome.Success {
		t.Logger.Error("campaign dispatch failed",
			zap.String("kind", item.Kind),
			zap.Int64("content_id", item.ID),
			zap.String("error", outcome.Error),
		)
	}

	// Record the attempt regardless of outcome so failures are not retried
	// on every subsequent save.
	n, err := t.Ledger.Record(ctx, item.Kind, item.ID, outcome)
	if err != nil {
		var dup *appErrors.ErrDuplicateNotification
		if errors.As(err, &dup) {
			t.Logger.Debug("concurrent save already recorded the notification",
				zap.String("kind", item.Kind),
				zap.Int64("content_id", item.ID),
			)
			return
		}
		t.Logger.Error("failed to record notification",
			zap.String("kind", item.Kind),
			zap.Int64("content_id", item.ID),
			zap.Error(err),
		)
		return
	}
	metrics.IncNotification(n.Kind, n.Status)
}
