package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/model"
)

type SubscriptionRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*model.NewsletterSubscription, error)
	Create(ctx context.Context, s *model.NewsletterSubscription) error
	Confirm(ctx context.Context, id int64) error
	Unsubscribe(ctx context.Context, email string) error
	UpdateSync(ctx context.Context, id int64, externalID, syncError string) error
	Stats(ctx context.Context) (map[string]int, error)
}

type SubscriptionRepository struct {
	DB *sql.DB
}

const subscriptionColumns = `id, email, status, ip_address, source, external_id,
        synced_at, sync_error, confirmed_at, unsubscribed_at, created_at`

// GetByEmail returns nil when no subscription exists for the email.
func (r *SubscriptionRepository) GetByEmail(ctx context.Context, email string) (*model.NewsletterSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM newsletter_subscriptions WHERE email=$1`
	var s model.NewsletterSubscription
	err := r.DB.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(
		&s.ID, &s.Email, &s.Status, &s.IPAddress, &s.Source, &s.ExternalID,
		&s.SyncedAt, &s.SyncError, &s.ConfirmedAt, &s.UnsubscribedAt, &s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *model.NewsletterSubscription) error {
	s.Email = strings.ToLower(s.Email)
	s.CreatedAt = time.Now()
	if s.Status == "" {
		s.Status = model.SubscriptionPending
	}
	query := `
        INSERT INTO newsletter_subscriptions (email, status, ip_address, source, confirmed_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		s.Email, s.Status, s.IPAddress, s.Source, s.ConfirmedAt, s.CreatedAt,
	).Scan(&s.ID)
}

func (r *SubscriptionRepository) Confirm(ctx context.Context, id int64) error {
	query := `
        UPDATE newsletter_subscriptions
        SET status=$1, confirmed_at=NOW(), unsubscribed_at=NULL
        WHERE id=$2
    `
	_, err := r.DB.ExecContext(ctx, query, model.SubscriptionConfirmed, id)
	return err
}

func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, email string) error {
	query := `
        UPDATE newsletter_subscriptions
        SET status=$1, unsubscribed_at=NOW()
        WHERE email=$2
    `
	res, err := r.DB.ExecContext(ctx, query, model.SubscriptionUnsubscribed, strings.ToLower(email))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.NewSubscriptionNotFound(email)
	}
	return nil
}

func (r *SubscriptionRepository) UpdateSync(ctx context.Context, id int64, externalID, syncError string) error {
	query := `
        UPDATE newsletter_subscriptions
        SET external_id = CASE WHEN $1 <> '' THEN $1 ELSE external_id END,
            synced_at = CASE WHEN $2 = '' THEN NOW() ELSE synced_at END,
            sync_error = $2
        WHERE id=$3
    `
	_, err := r.DB.ExecContext(ctx, query, externalID, syncError, id)
	return err
}

func (r *SubscriptionRepository) Stats(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM newsletter_subscriptions GROUP BY status`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		"total":        0,
		"pending":      0,
		"confirmed":    0,
		"unsubscribed": 0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, ok := stats[status]; ok {
			stats[status] = count
		}
		stats["total"] += count
	}
	return stats, nil
}

var _ SubscriptionRepositoryInterface = (*SubscriptionRepository)(nil)
