package service_test

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/service"
)

// Mock article repository
type MockArticleRepo struct {
	previousStatus string
	updated        *model.Article
}

func (m *MockArticleRepo) Create(ctx context.Context, a *model.Article) error {
	a.ID = 42
	return nil
}

func (m *MockArticleRepo) Update(ctx context.Context, a *model.Article) (string, error) {
	m.updated = a
	return m.previousStatus, nil
}

func (m *MockArticleRepo) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	return nil, nil
}

func (m *MockArticleRepo) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	return nil, nil
}

func (m *MockArticleRepo) List(ctx context.Context, offset, limit int, category, status string) ([]*model.Article, int, error) {
	return []*model.Article{}, 0, nil
}

// Mock video repository
type MockVideoRepo struct{}

func (m *MockVideoRepo) Create(ctx context.Context, v *model.Video) error {
	v.ID = 7
	return nil
}

func (m *MockVideoRepo) Update(ctx context.Context, v *model.Video) (string, error) {
	return model.StatusDraft, nil
}

func (m *MockVideoRepo) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	return nil, nil
}

func (m *MockVideoRepo) GetBySlug(ctx context.Context, slug string) (*model.Video, error) {
	return nil, nil
}

func (m *MockVideoRepo) List(ctx context.Context, offset, limit int, videoType, status string) ([]*model.Video, int, error) {
	return []*model.Video{}, 0, nil
}

func newContentService(articles *MockArticleRepo, ledger *MockLedger, dispatcher *MockDispatcher) *service.ContentService {
	return &service.ContentService{
		Articles: articles,
		Videos:   &MockVideoRepo{},
		Trigger: &service.PublicationTrigger{
			Ledger:     ledger,
			Dispatcher: dispatcher,
			Enabled:    true,
			Logger:     zap.NewNop(),
		},
		WPM:    200,
		Logger: zap.NewNop(),
	}
}

func TestSaveArticleSideEffects(t *testing.T) {
	ledger := &MockLedger{}
	dispatcher := &MockDispatcher{outcome: model.Outcome{Success: true, CampaignID: "1"}}
	svc := newContentService(&MockArticleRepo{}, ledger, dispatcher)

	article := &model.Article{
		Title:   "Les Génies de la Tech Africaine",
		Content: "<p>" + strings.Repeat("mot ", 450) + "</p>",
		Status:  model.StatusDraft,
	}
	if err := svc.SaveArticle(context.Background(), article); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	if article.Slug != "les-genies-de-la-tech-africaine" {
		t.Errorf("slug not derived from title: %q", article.Slug)
	}
	if article.Excerpt == "" || !strings.HasSuffix(article.Excerpt, "...") {
		t.Errorf("excerpt not generated from content: %q", article.Excerpt)
	}
	if article.ReadingTime != 3 {
		t.Errorf("reading time = %d, want 3 (450 words at 200 wpm)", article.ReadingTime)
	}
	if dispatcher.calls != 0 {
		t.Error("draft save must not reach the dispatcher")
	}
}

func TestSaveArticlePublishDispatches(t *testing.T) {
	ledger := &MockLedger{}
	dispatcher := &MockDispatcher{outcome: model.Outcome{Success: true, CampaignID: "1"}}
	repo := &MockArticleRepo{previousStatus: model.StatusDraft}
	svc := newContentService(repo, ledger, dispatcher)

	article := &model.Article{
		ID:      42,
		Title:   "Un titre",
		Slug:    "un-titre",
		Content: "<p>Texte.</p>",
		Status:  model.StatusPublished,
	}
	if err := svc.SaveArticle(context.Background(), article); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	if dispatcher.calls != 1 {
		t.Fatalf("publishing must dispatch exactly once, got %d", dispatcher.calls)
	}
	if len(ledger.recorded) != 1 {
		t.Fatalf("publishing must write one ledger row, got %d", len(ledger.recorded))
	}
}

func TestSaveVideoDerivesYouTubeMetadata(t *testing.T) {
	ledger := &MockLedger{}
	dispatcher := &MockDispatcher{outcome: model.Outcome{Success: true}}
	svc := newContentService(&MockArticleRepo{}, ledger, dispatcher)

	video := &model.Video{
		Title:      "Interview fintech à Dakar",
		YouTubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Status:     model.StatusDraft,
	}
	if err := svc.SaveVideo(context.Background(), video); err != nil {
		t.Fatalf("SaveVideo: %v", err)
	}

	if video.YouTubeID != "dQw4w9WgXcQ" {
		t.Errorf("youtube id not extracted: %q", video.YouTubeID)
	}
	if video.ThumbnailURL != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("thumbnail not derived: %q", video.ThumbnailURL)
	}
	if video.Slug != "interview-fintech-a-dakar" {
		t.Errorf("slug not derived: %q", video.Slug)
	}
}
