// internal/controller/content_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/service"
)

type ContentController struct {
	ContentService *service.ContentService
}

func (c *ContentController) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title        string `json:"title"`
		Slug         string `json:"slug"`
		Excerpt      string `json:"excerpt"`
		Content      string `json:"content"`
		ImageURL     string `json:"image_url"`
		AuthorName   string `json:"author_name"`
		CategoryName string `json:"category_name"`
		IsFeatured   bool   `json:"is_featured"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	article := &model.Article{
		Title:        body.Title,
		Slug:         body.Slug,
		Excerpt:      body.Excerpt,
		Content:      body.Content,
		ImageURL:     body.ImageURL,
		AuthorName:   body.AuthorName,
		CategoryName: body.CategoryName,
		IsFeatured:   body.IsFeatured,
		Status:       body.Status,
	}
	if err := c.ContentService.SaveArticle(r.Context(), article); err != nil {
		http.Error(w, "failed to create article: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(article)
}

func (c *ContentController) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid article id", http.StatusBadRequest)
		return
	}

	var article model.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	article.ID = id

	if err := c.ContentService.SaveArticle(r.Context(), &article); err != nil {
		var notFound *appErrors.ErrContentNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update article: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&article)
}

func (c *ContentController) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := c.ContentService.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		http.Error(w, "failed to fetch article: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.Error(w, "article not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(article)
}

func (c *ContentController) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = model.StatusPublished
	}

	articles, total, err := c.ContentService.ListArticles(r.Context(), (page-1)*pageSize, pageSize, category, status)
	if err != nil {
		http.Error(w, "failed to fetch articles: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": articles,
		"pagination": map[string]interface{}{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	})
}

func (c *ContentController) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title        string `json:"title"`
		Slug         string `json:"slug"`
		Description  string `json:"description"`
		YouTubeURL   string `json:"youtube_url"`
		ThumbnailURL string `json:"thumbnail_url"`
		VideoType    string `json:"video_type"`
		Duration     int    `json:"duration"`
		CategoryName string `json:"category_name"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	video := &model.Video{
		Title:        body.Title,
		Slug:         body.Slug,
		Description:  body.Description,
		YouTubeURL:   body.YouTubeURL,
		ThumbnailURL: body.ThumbnailURL,
		VideoType:    body.VideoType,
		Duration:     body.Duration,
		CategoryName: body.CategoryName,
		Status:       body.Status,
	}
	if err := c.ContentService.SaveVideo(r.Context(), video); err != nil {
		http.Error(w, "failed to create video: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(video)
}

func (c *ContentController) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid video id", http.StatusBadRequest)
		return
	}

	var video model.Video
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	video.ID = id

	if err := c.ContentService.SaveVideo(r.Context(), &video); err != nil {
		var notFound *appErrors.ErrContentNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update video: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&video)
}

func (c *ContentController) GetVideo(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	video, err := c.ContentService.GetVideoBySlug(r.Context(), slug)
	if err != nil {
		http.Error(w, "failed to fetch video: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if video == nil {
		http.Error(w, "video not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(video)
}

func (c *ContentController) ListVideos(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	videoType := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = model.StatusPublished
	}

	videos, total, err := c.ContentService.ListVideos(r.Context(), (page-1)*pageSize, pageSize, videoType, status)
	if err != nil {
		http.Error(w, "failed to fetch videos: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": videos,
		"pagination": map[string]interface{}{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	})
}

func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
