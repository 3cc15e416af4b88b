package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gamedia/editorial-backend/internal/handler"
	"github.com/gamedia/editorial-backend/internal/model"
)

// Mock notification repository
type MockNotificationRepo struct {
	rows  []model.ContentNotification
	total int

	gotKind   string
	gotOffset int
	gotLimit  int
}

func (m *MockNotificationRepo) Has(ctx context.Context, kind string, contentID int64) (bool, error) {
	return false, nil
}

func (m *MockNotificationRepo) Record(ctx context.Context, kind string, contentID int64, outcome model.Outcome) (*model.ContentNotification, error) {
	return nil, nil
}

func (m *MockNotificationRepo) List(ctx context.Context, kind string, offset, limit int) ([]model.ContentNotification, int, error) {
	m.gotKind = kind
	m.gotOffset = offset
	m.gotLimit = limit
	return m.rows, m.total, nil
}

func (m *MockNotificationRepo) Stats(ctx context.Context) (map[string]int, error) {
	return map[string]int{"total": 3, "article_sent": 2, "video_failed": 1}, nil
}

func TestListNotificationsHandler(t *testing.T) {
	repo := &MockNotificationRepo{
		rows: []model.ContentNotification{
			{ID: 1, Kind: model.KindArticle, ContentID: 42, CampaignID: "77", Status: model.NotificationSent, AttemptedAt: time.Now()},
		},
		total: 21,
	}
	h := handler.NewNotificationHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/notifications?kind=article&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	h.ListNotificationsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if repo.gotKind != "article" || repo.gotOffset != 10 || repo.gotLimit != 10 {
		t.Errorf("unexpected query: kind=%q offset=%d limit=%d", repo.gotKind, repo.gotOffset, repo.gotLimit)
	}

	var body struct {
		Data       []model.ContentNotification `json:"data"`
		Pagination map[string]int              `json:"pagination"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].CampaignID != "77" {
		t.Errorf("unexpected data: %+v", body.Data)
	}
	if body.Pagination["total_count"] != 21 || body.Pagination["total_pages"] != 3 {
		t.Errorf("unexpected pagination: %v", body.Pagination)
	}
}

func TestNotificationStatsHandler(t *testing.T) {
	h := handler.NewNotificationHandler(&MockNotificationRepo{})

	req := httptest.NewRequest(http.MethodGet, "/notifications/stats", nil)
	rec := httptest.NewRecorder()
	h.NotificationStatsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats["total"] != 3 || stats["article_sent"] != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}
