// internal/service/newsletter_service.go
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/newsletter"
	"github.com/gamedia/editorial-backend/internal/repository"
)

// NewsletterService manages local subscriptions and keeps them in sync with
// the external provider. The local row is the source of truth: a provider
// outage degrades to a stored sync_error, never a failed subscription.
type NewsletterService struct {
	Subscriptions repository.SubscriptionRepositoryInterface
	Provider      newsletter.Provider
	Logger        *zap.Logger
}

func (s *NewsletterService) Subscribe(ctx context.Context, email, ipAddress, source string) (*model.NewsletterSubscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	sub, err := s.Subscriptions.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if sub == nil {
		sub = &model.NewsletterSubscription{
			Email:     email,
			Status:    model.SubscriptionConfirmed,
			IPAddress: ipAddress,
			Source:    source,
		}
		if err := s.Subscriptions.Create(ctx, sub); err != nil {
			return nil, err
		}
	} else if sub.Status == model.SubscriptionUnsubscribed {
		if err := s.Subscriptions.Confirm(ctx, sub.ID); err != nil {
			return nil, err
		}
		sub.Status = model.SubscriptionConfirmed
		sub.UnsubscribedAt = nil
	}

	s.syncSubscribe(ctx, sub)
	return sub, nil
}

// syncSubscribe pushes the subscription to the provider. Failures are stored
// on the row and logged; the caller's subscription already succeeded.
func (s *NewsletterService) syncSubscribe(ctx context.Context, sub *model.NewsletterSubscription) {
	if s.Provider == nil {
		return
	}

	result, err := s.Provider.Subscribe(ctx, sub.Email, "", "")
	if err != nil {
		s.Logger.Warn("provider sync failed",
			zap.String("provider", s.Provider.Name()),
			zap.String("email", sub.Email),
			zap.Error(err),
		)
		sub.SyncError = err.Error()
		if err := s.Subscriptions.UpdateSync(ctx, sub.ID, "", sub.SyncError); err != nil {
			s.Logger.Error("failed to store sync error", zap.Int64("id", sub.ID), zap.Error(err))
		}
		return
	}

	sub.ExternalID = result.ID
	sub.SyncError = ""
	if err := s.Subscriptions.UpdateSync(ctx, sub.ID, result.ID, ""); err != nil {
		s.Logger.Error("failed to store sync state", zap.Int64("id", sub.ID), zap.Error(err))
	}
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.Subscriptions.Unsubscribe(ctx, email); err != nil {
		return err
	}

	if s.Provider != nil {
		if err := s.Provider.Unsubscribe(ctx, email); err != nil {
			s.Logger.Warn("provider unsubscribe failed",
				zap.String("provider", s.Provider.Name()),
				zap.String("email", email),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *NewsletterService) Stats(ctx context.Context) (map[string]int, error) {
	return s.Subscriptions.Stats(ctx)
}
