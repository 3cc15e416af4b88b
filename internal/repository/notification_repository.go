package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/model"
)

// NotificationRepositoryInterface is the ledger: at most one row per
// (kind, content_id), enforced by the table's unique constraint. The
// constraint is the sole correctness mechanism under concurrent publishes;
// there is no application-level locking.
type NotificationRepositoryInterface interface {
	Has(ctx context.Context, kind string, contentID int64) (bool, error)
	Record(ctx context.Context, kind string, contentID int64, outcome model.Outcome) (*model.ContentNotification, error)
	List(ctx context.Context, kind string, offset, limit int) ([]model.ContentNotification, int, error)
	Stats(ctx context.Context) (map[string]int, error)
}

type NotificationRepository struct {
	DB *sql.DB
}

// Has reports whether a notification was already attempted for the content.
func (r *NotificationRepository) Has(ctx context.Context, kind string, contentID int64) (bool, error) {
	query := `
        SELECT 1 FROM content_notifications
        WHERE kind = $1 AND content_id = $2
        LIMIT 1
    `
	var tmp int
	err := r.DB.QueryRowContext(ctx, query, kind, contentID).Scan(&tmp)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Record inserts the single ledger row for this attempt. A unique violation
// means another caller won the race; it surfaces as ErrDuplicateNotification
// so the trigger can treat it as benign.
func (r *NotificationRepository) Record(ctx context.Context, kind string, contentID int64, outcome model.Outcome) (*model.ContentNotification, error) {
	n := &model.ContentNotification{
		Kind:       kind,
		ContentID:  contentID,
		CampaignID: outcome.CampaignID,
		Status:     model.NotificationSent,
	}
	if !outcome.Success {
		n.Status = model.NotificationFailed
		n.CampaignID = ""
		n.ErrorMessage = outcome.Error
	}

	query := `
        INSERT INTO content_notifications (kind, content_id, campaign_id, status, error_message, attempted_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, attempted_at
    `
	err := r.DB.QueryRowContext(ctx, query, n.Kind, n.ContentID, n.CampaignID, n.Status, n.ErrorMessage).
		Scan(&n.ID, &n.AttemptedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, appErrors.NewDuplicateNotification(kind, contentID)
		}
		return nil, err
	}
	return n, nil
}

// List returns ledger rows, newest first, optionally filtered by kind.
func (r *NotificationRepository) List(ctx context.Context, kind string, offset, limit int) ([]model.ContentNotification, int, error) {
	query := `
        SELECT id, kind, content_id, campaign_id, status, error_message, attempted_at
        FROM content_notifications
        WHERE ($1 = '' OR kind = $1)
        ORDER BY attempted_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.DB.QueryContext(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := []model.ContentNotification{}
	for rows.Next() {
		var n model.ContentNotification
		if err := rows.Scan(&n.ID, &n.Kind, &n.ContentID, &n.CampaignID, &n.Status, &n.ErrorMessage, &n.AttemptedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM content_notifications WHERE ($1 = '' OR kind = $1)`
	if err := r.DB.QueryRowContext(ctx, countQuery, kind).Scan(&total); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// Stats aggregates ledger rows by kind and status for the operator endpoint.
func (r *NotificationRepository) Stats(ctx context.Context) (map[string]int, error) {
	query := `SELECT kind, status, COUNT(*) FROM content_notifications GROUP BY kind, status`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		"total":          0,
		"article_sent":   0,
		"article_failed": 0,
		"video_sent":     0,
		"video_failed":   0,
	}
	for rows.Next() {
		var kind, status string
		var count int
		if err := rows.Scan(&kind, &status, &count); err != nil {
			return nil, err
		}
		stats[kind+"_"+status] = count
		stats["total"] += count
	}
	return stats, nil
}

var _ NotificationRepositoryInterface = (*NotificationRepository)(nil)
