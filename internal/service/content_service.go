// internal/service/content_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/cache"
	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/repository"
)

const (
	excerptMaxLen = 300
	listCacheTTL  = 5 * time.Minute
	itemCacheTTL  = 15 * time.Minute
)

// ContentService owns article and video persistence plus the pre-save side
// effects (slug, excerpt, reading time, YouTube metadata). Every save ends
// with a synchronous call into the publication trigger.
type ContentService struct {
	Articles repository.ArticleRepositoryInterface
	Videos   repository.VideoRepositoryInterface
	Trigger  *PublicationTrigger
	Cache    cache.Cache
	WPM      int
	Logger   *zap.Logger
}

func (s *ContentService) SaveArticle(ctx context.Context, a *model.Article) error {
	s.prepareArticle(a)

	previousStatus := ""
	var err error
	if a.ID == 0 {
		err = s.Articles.Create(ctx, a)
	} else {
		previousStatus, err = s.Articles.Update(ctx, a)
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, cache.KeyArticleList, cache.KeyArticle(a.Slug))
	s.Trigger.OnSaved(ctx, a.View(), previousStatus)
	return nil
}

func (s *ContentService) SaveVideo(ctx context.Context, v *model.Video) error {
	s.prepareVideo(v)

	previousStatus := ""
	var err error
	if v.ID == 0 {
		err = s.Videos.Create(ctx, v)
	} else {
		previousStatus, err = s.Videos.Update(ctx, v)
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, cache.KeyVideoList, cache.KeyVideo(v.Slug))
	s.Trigger.OnSaved(ctx, v.View(), previousStatus)
	return nil
}

func (s *ContentService) prepareArticle(a *model.Article) {
	if a.Slug == "" {
		a.Slug = Slugify(a.Title)
	}
	if a.Excerpt == "" && a.Content != "" {
		a.Excerpt = GenerateExcerpt(a.Content, excerptMaxLen)
	}
	a.ReadingTime = ReadingTime(a.Content, s.WPM)
}

func (s *ContentService) prepareVideo(v *model.Video) {
	if v.Slug == "" {
		v.Slug = Slugify(v.Title)
	}
	if v.YouTubeID == "" && v.YouTubeURL != "" {
		v.YouTubeID = ExtractYouTubeID(v.YouTubeURL)
	}
	if v.ThumbnailURL == "" && v.YouTubeID != "" {
		v.ThumbnailURL = YouTubeThumbnail(v.YouTubeID)
	}
}

func (s *ContentService) GetArticleBySlug(ctx context.Context, slug string) (*model.Article, error) {
	key := cache.KeyArticle(slug)
	if data, ok := s.cacheGet(ctx, key); ok {
		var a model.Article
		if err := json.Unmarshal(data, &a); err == nil {
			return &a, nil
		}
	}

	a, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil || a == nil {
		return a, err
	}
	s.cacheSet(ctx, key, a, itemCacheTTL)
	return a, nil
}

func (s *ContentService) GetVideoBySlug(ctx context.Context, slug string) (*model.Video, error) {
	key := cache.KeyVideo(slug)
	if data, ok := s.cacheGet(ctx, key); ok {
		var v model.Video
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
	}

	v, err := s.Videos.GetBySlug(ctx, slug)
	if err != nil || v == nil {
		return v, err
	}
	s.cacheSet(ctx, key, v, itemCacheTTL)
	return v, nil
}

type articleListPage struct {
	Articles []*model.Article `json:"articles"`
	Total    int              `json:"total"`
}

type videoListPage struct {
	Videos []*model.Video `json:"videos"`
	Total  int            `json:"total"`
}

// ListArticles caches only the default listing (first page, no filters),
// which is what the homepage hits on every request.
func (s *ContentService) ListArticles(ctx context.Context, offset, limit int, category, status string) ([]*model.Article, int, error) {
	cacheable := offset == 0 && category == "" && status == model.StatusPublished
	if cacheable {
		if data, ok := s.cacheGet(ctx, cache.KeyArticleList); ok {
			var page articleListPage
			if err := json.Unmarshal(data, &page); err == nil {
				return page.Articles, page.Total, nil
			}
		}
	}

	articles, total, err := s.Articles.List(ctx, offset, limit, category, status)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		s.cacheSet(ctx, cache.KeyArticleList, articleListPage{Articles: articles, Total: total}, listCacheTTL)
	}
	return articles, total, nil
}

func (s *ContentService) ListVideos(ctx context.Context, offset, limit int, videoType, status string) ([]*model.Video, int, error) {
	cacheable := offset == 0 && videoType == "" && status == model.StatusPublished
	if cacheable {
		if data, ok := s.cacheGet(ctx, cache.KeyVideoList); ok {
			var page videoListPage
			if err := json.Unmarshal(data, &page); err == nil {
				return page.Videos, page.Total, nil
			}
		}
	}

	videos, total, err := s.Videos.List(ctx, offset, limit, videoType, status)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		s.cacheSet(ctx, cache.KeyVideoList, videoListPage{Videos: videos, Total: total}, listCacheTTL)
	}
	return videos, total, nil
}

func (s *ContentService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, ok
}

func (s *ContentService) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, ttl); err != nil {
		s.Logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ContentService) invalidate(ctx context.Context, keys ...string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, keys...); err != nil {
		s.Logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
