// internal/errors/errors.go
package appErrors

import "fmt"

// ErrDuplicateNotification signals that a ledger row already exists for a
// (kind, content_id) pair. Callers must treat it as "already notified",
// not as a failure.
type ErrDuplicateNotification struct {
	Kind      string
	ContentID int64
}

func (e *ErrDuplicateNotification) Error() string {
	return fmt.Sprintf("notification already recorded for %s %d", e.Kind, e.ContentID)
}

// Helper constructor
func NewDuplicateNotification(kind string, contentID int64) error {
	return &ErrDuplicateNotification{Kind: kind, ContentID: contentID}
}

// ErrContentNotFound is a sentinel error
type ErrContentNotFound struct {
	Kind string
	ID   int64
}

func (e *ErrContentNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Kind, e.ID)
}

func NewContentNotFound(kind string, id int64) error {
	return &ErrContentNotFound{Kind: kind, ID: id}
}

// ErrSubscriptionNotFound is a sentinel error
type ErrSubscriptionNotFound struct {
	Email string
}

func (e *ErrSubscriptionNotFound) Error() string {
	return fmt.Sprintf("subscription for %s not found", e.Email)
}

func NewSubscriptionNotFound(email string) error {
	return &ErrSubscriptionNotFound{Email: email}
}
