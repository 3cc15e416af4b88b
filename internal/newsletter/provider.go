// Package newsletter holds the outbound email/campaign provider clients.
// The concrete provider is selected once at process start and injected;
// nothing in here is looked up globally.
package newsletter

import (
	"context"
	"fmt"
)

// ServiceError is returned for any provider failure: HTTP errors, timeouts,
// malformed responses, missing configuration.
type ServiceError struct {
	Provider string
	Message  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func NewServiceError(provider, format string, args ...any) error {
	return &ServiceError{Provider: provider, Message: fmt.Sprintf(format, args...)}
}

type SubscribeResult struct {
	ID                string
	AlreadySubscribed bool
}

// Provider is the subscriber-management capability every newsletter
// integration offers.
type Provider interface {
	Name() string
	Subscribe(ctx context.Context, email, firstName, lastName string) (*SubscribeResult, error)
	Unsubscribe(ctx context.Context, email string) error
	GetSubscriber(ctx context.Context, email string) (map[string]any, error)
}

// CampaignSender creates and sends one campaign to the configured recipient
// list. Not every provider supports it (Mailchimp does not here).
type CampaignSender interface {
	CreateCampaign(ctx context.Context, name, subject, html string) (string, error)
	SendCampaign(ctx context.Context, campaignID string) error
}

// TransactionalSender delivers a single email to one recipient.
type TransactionalSender interface {
	SendEmail(ctx context.Context, msg TransactionalEmail) (string, error)
}

type TransactionalEmail struct {
	ToEmail      string
	ToName       string
	Subject      string
	HTML         string
	ReplyToEmail string
	ReplyToName  string
}
