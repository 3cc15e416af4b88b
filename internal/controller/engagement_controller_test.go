package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/controller"
	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/service"
)

// Mock subscription repository
type MockSubscriptionRepo struct {
	created *model.NewsletterSubscription
}

func (m *MockSubscriptionRepo) GetByEmail(ctx context.Context, email string) (*model.NewsletterSubscription, error) {
	return nil, nil
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, s *model.NewsletterSubscription) error {
	s.ID = 1
	m.created = s
	return nil
}

func (m *MockSubscriptionRepo) Confirm(ctx context.Context, id int64) error        { return nil }
func (m *MockSubscriptionRepo) Unsubscribe(ctx context.Context, email string) error { return nil }
func (m *MockSubscriptionRepo) UpdateSync(ctx context.Context, id int64, externalID, syncError string) error {
	return nil
}
func (m *MockSubscriptionRepo) Stats(ctx context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

// Mock contact repository
type MockContactRepo struct {
	created *model.ContactMessage
}

func (m *MockContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	msg.ID = 11
	msg.Status = model.ContactNew
	msg.CreatedAt = time.Now()
	m.created = msg
	return nil
}

func (m *MockContactRepo) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	return nil, nil
}

func (m *MockContactRepo) MarkAsRead(ctx context.Context, id int64) error { return nil }

func newEngagementController(subs *MockSubscriptionRepo, contacts *MockContactRepo) *controller.EngagementController {
	return &controller.EngagementController{
		NewsletterService: &service.NewsletterService{
			Subscriptions: subs,
			Logger:        zap.NewNop(),
		},
		ContactService: &service.ContactService{
			Messages: contacts,
			Logger:   zap.NewNop(),
		},
	}
}

func TestSubscribeEndpoint(t *testing.T) {
	subs := &MockSubscriptionRepo{}
	c := newEngagementController(subs, &MockContactRepo{})

	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe",
		strings.NewReader(`{"email":"Reader@Example.com","source":"footer"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	c.Subscribe(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if subs.created == nil {
		t.Fatal("expected a subscription row")
	}
	if subs.created.Email != "reader@example.com" {
		t.Errorf("email not normalized: %q", subs.created.Email)
	}
	if subs.created.IPAddress != "203.0.113.9" {
		t.Errorf("client IP should come from X-Forwarded-For, got %q", subs.created.IPAddress)
	}

	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != model.SubscriptionConfirmed {
		t.Errorf("unexpected response status: %v", body["status"])
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	c := newEngagementController(&MockSubscriptionRepo{}, &MockContactRepo{})

	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe",
		strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	c.Subscribe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitContactEndpoint(t *testing.T) {
	contacts := &MockContactRepo{}
	c := newEngagementController(&MockSubscriptionRepo{}, contacts)

	req := httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Awa","email":"awa@example.com","subject":"Question","message":"Bonjour"}`))
	rec := httptest.NewRecorder()
	c.SubmitContact(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if contacts.created == nil || contacts.created.Subject != "Question" {
		t.Errorf("message not stored: %+v", contacts.created)
	}
}

func TestSubmitContactRequiresFields(t *testing.T) {
	c := newEngagementController(&MockSubscriptionRepo{}, &MockContactRepo{})

	req := httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"email":"awa@example.com"}`))
	rec := httptest.NewRecorder()
	c.SubmitContact(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
