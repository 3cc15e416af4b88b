// internal/model/engagement.go
package model

import "time"

// Newsletter subscription statuses
const (
	SubscriptionPending      = "pending"
	SubscriptionConfirmed    = "confirmed"
	SubscriptionUnsubscribed = "unsubscribed"
)

// Contact message statuses
const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

type NewsletterSubscription struct {
	ID             int64      `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Status         string     `db:"status" json:"status"`
	IPAddress      string     `db:"ip_address" json:"ip_address,omitempty"`
	Source         string     `db:"source" json:"source,omitempty"`
	ExternalID     string     `db:"external_id" json:"external_id,omitempty"`
	SyncedAt       *time.Time `db:"synced_at" json:"synced_at,omitempty"`
	SyncError      string     `db:"sync_error" json:"sync_error,omitempty"`
	ConfirmedAt    *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type ContactMessage struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Subject   string     `db:"subject" json:"subject"`
	Message   string     `db:"message" json:"message"`
	Status    string     `db:"status" json:"status"`
	IPAddress string     `db:"ip_address" json:"ip_address,omitempty"`
	RepliedAt *time.Time `db:"replied_at" json:"replied_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
