package service_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/newsletter"
	"github.com/gamedia/editorial-backend/internal/service"
)

// Mock subscription repository
type MockSubscriptionRepo struct {
	existing *model.NewsletterSubscription

	created   *model.NewsletterSubscription
	confirmed []int64
	syncCalls []struct {
		ID         int64
		ExternalID string
		SyncError  string
	}
}

func (m *MockSubscriptionRepo) GetByEmail(ctx context.Context, email string) (*model.NewsletterSubscription, error) {
	return m.existing, nil
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, s *model.NewsletterSubscription) error {
	s.ID = 1
	m.created = s
	return nil
}

func (m *MockSubscriptionRepo) Confirm(ctx context.Context, id int64) error {
	m.confirmed = append(m.confirmed, id)
	return nil
}

func (m *MockSubscriptionRepo) Unsubscribe(ctx context.Context, email string) error { return nil }

func (m *MockSubscriptionRepo) UpdateSync(ctx context.Context, id int64, externalID, syncError string) error {
	m.syncCalls = append(m.syncCalls, struct {
		ID         int64
		ExternalID string
		SyncError  string
	}{id, externalID, syncError})
	return nil
}

func (m *MockSubscriptionRepo) Stats(ctx context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

// Mock provider
type MockProvider struct {
	subscribeErr error
	externalID   string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Subscribe(ctx context.Context, email, firstName, lastName string) (*newsletter.SubscribeResult, error) {
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}
	return &newsletter.SubscribeResult{ID: m.externalID}, nil
}

func (m *MockProvider) Unsubscribe(ctx context.Context, email string) error { return nil }

func (m *MockProvider) GetSubscriber(ctx context.Context, email string) (map[string]any, error) {
	return nil, nil
}

func TestSubscribeCreatesAndSyncs(t *testing.T) {
	repo := &MockSubscriptionRepo{}
	svc := &service.NewsletterService{
		Subscriptions: repo,
		Provider:      &MockProvider{externalID: "ext-9"},
		Logger:        zap.NewNop(),
	}

	sub, err := svc.Subscribe(context.Background(), "  Reader@Example.COM ", "203.0.113.9", "footer")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected a new subscription row")
	}
	if sub.Email != "reader@example.com" {
		t.Errorf("email must be normalized, got %q", sub.Email)
	}
	if len(repo.syncCalls) != 1 || repo.syncCalls[0].ExternalID != "ext-9" || repo.syncCalls[0].SyncError != "" {
		t.Errorf("unexpected sync calls: %+v", repo.syncCalls)
	}
}

func TestSubscribeSurvivesProviderOutage(t *testing.T) {
	repo := &MockSubscriptionRepo{}
	svc := &service.NewsletterService{
		Subscriptions: repo,
		Provider:      &MockProvider{subscribeErr: newsletter.NewServiceError("mock", "status 500")},
		Logger:        zap.NewNop(),
	}

	sub, err := svc.Subscribe(context.Background(), "reader@example.com", "", "")
	if err != nil {
		t.Fatalf("provider outage must not fail the subscription: %v", err)
	}
	if sub.SyncError == "" {
		t.Error("sync error should be stored on the row")
	}
	if len(repo.syncCalls) != 1 || repo.syncCalls[0].SyncError == "" {
		t.Errorf("sync error was not persisted: %+v", repo.syncCalls)
	}
}

func TestSubscribeReactivatesUnsubscribed(t *testing.T) {
	repo := &MockSubscriptionRepo{
		existing: &model.NewsletterSubscription{
			ID:     3,
			Email:  "reader@example.com",
			Status: model.SubscriptionUnsubscribed,
		},
	}
	svc := &service.NewsletterService{
		Subscriptions: repo,
		Provider:      &MockProvider{externalID: "ext-3"},
		Logger:        zap.NewNop(),
	}

	sub, err := svc.Subscribe(context.Background(), "reader@example.com", "", "")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if repo.created != nil {
		t.Error("must reuse the existing row, not create a new one")
	}
	if len(repo.confirmed) != 1 || repo.confirmed[0] != 3 {
		t.Errorf("expected row 3 to be reactivated, got %v", repo.confirmed)
	}
	if sub.Status != model.SubscriptionConfirmed {
		t.Errorf("status = %q, want confirmed", sub.Status)
	}
}

func TestSubscribeIdempotentForActiveSubscription(t *testing.T) {
	repo := &MockSubscriptionRepo{
		existing: &model.NewsletterSubscription{
			ID:     4,
			Email:  "reader@example.com",
			Status: model.SubscriptionConfirmed,
		},
	}
	svc := &service.NewsletterService{
		Subscriptions: repo,
		Provider:      &MockProvider{externalID: "ext-4"},
		Logger:        zap.NewNop(),
	}

	if _, err := svc.Subscribe(context.Background(), "reader@example.com", "", ""); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if repo.created != nil {
		t.Error("active subscription must not create a new row")
	}
	if len(repo.confirmed) != 0 {
		t.Error("active subscription needs no reactivation")
	}
}
