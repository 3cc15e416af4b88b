// internal/service/contact_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/newsletter"
	"github.com/gamedia/editorial-backend/internal/queue"
	"github.com/gamedia/editorial-backend/internal/repository"
)

// ContactService persists contact form messages and enqueues the admin
// notification. Queue failures are logged only; the message is already
// stored and an admin can still find it in the back office.
type ContactService struct {
	Messages repository.ContactRepositoryInterface
	Queue    queue.Queue
	Logger   *zap.Logger
}

func (s *ContactService) Submit(ctx context.Context, m *model.ContactMessage) error {
	if err := s.Messages.Create(ctx, m); err != nil {
		return err
	}

	if s.Queue != nil {
		if err := s.Queue.Publish(ctx, queue.TopicContactNotifications, m.ID); err != nil {
			s.Logger.Error("failed to enqueue contact notification",
				zap.Int64("message_id", m.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// ContactWorker renders and sends the admin notification for one queued
// contact message. Errors propagate so the queue can retry.
type ContactWorker struct {
	Messages   repository.ContactRepositoryInterface
	Sender     newsletter.TransactionalSender
	SiteName   string
	AdminEmail string
	AdminName  string
	Logger     *zap.Logger
}

func (w *ContactWorker) Process(ctx context.Context, messageID int64) error {
	m, err := w.Messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m == nil {
		w.Logger.Warn("contact message vanished, dropping job", zap.Int64("message_id", messageID))
		return nil
	}

	if w.Sender == nil {
		w.Logger.Warn("no transactional sender configured, skipping admin notification",
			zap.Int64("message_id", messageID))
		return nil
	}

	html, err := renderContactEmail(contactEmailData{
		SiteName:   w.SiteName,
		Name:       m.Name,
		Email:      m.Email,
		Subject:    m.Subject,
		Message:    m.Message,
		ReceivedAt: m.CreatedAt.Format("02/01/2006 15:04"),
	})
	if err != nil {
		return err
	}

	msgID, err := w.Sender.SendEmail(ctx, newsletter.TransactionalEmail{
		ToEmail:      w.AdminEmail,
		ToName:       w.AdminName,
		Subject:      fmt.Sprintf("\U0001F4E9 Contact: %s", m.Subject),
		HTML:         html,
		ReplyToEmail: m.Email,
		ReplyToName:  m.Name,
	})
	if err != nil {
		return err
	}

	w.Logger.Info("admin notified of contact message",
		zap.Int64("message_id", m.ID),
		zap.String("provider_message_id", msgID),
	)
	return nil
}
