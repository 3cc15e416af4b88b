// internal/model/notification.go
package model

import "time"

// Notification statuses. Pending exists for parity with the admin screens
// but rows are only written after an attempt, so sent/failed are the two
// states that actually occur.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// ContentNotification is one ledger row: at most one per (kind, content_id),
// enforced by a unique constraint. Rows are created once, at the moment a
// send is attempted, and never updated afterwards.
type ContentNotification struct {
	ID           int64     `db:"id" json:"id"`
	Kind         string    `db:"kind" json:"kind"`
	ContentID    int64     `db:"content_id" json:"content_id"`
	CampaignID   string    `db:"campaign_id" json:"campaign_id"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	AttemptedAt  time.Time `db:"attempted_at" json:"attempted_at"`
}

// Outcome is the transient result of a single dispatch attempt. It is never
// persisted as-is; the trigger consults it to decide what to write to the
// ledger and at which level to log.
type Outcome struct {
	Success     bool
	CampaignID  string
	AlreadySent bool
	Error       string
}
