// internal/model/content.go
package model

import "time"

// Content kinds and publication statuses
const (
	KindArticle = "article"
	KindVideo   = "video"

	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Video types (web TV)
const (
	VideoTypeEmission    = "emission"
	VideoTypeReportage   = "reportage"
	VideoTypeInterview   = "interview"
	VideoTypeDocumentary = "documentary"
	VideoTypeShort       = "short"
)

type Article struct {
	ID           int64      `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Slug         string     `db:"slug" json:"slug"`
	Excerpt      string     `db:"excerpt" json:"excerpt"`
	Content      string     `db:"content" json:"content"`
	ImageURL     string     `db:"image_url" json:"image_url"`
	AuthorName   string     `db:"author_name" json:"author_name"`
	CategoryName string     `db:"category_name" json:"category_name"`
	ReadingTime  int        `db:"reading_time" json:"reading_time"`
	ViewsCount   int        `db:"views_count" json:"views_count"`
	IsFeatured   bool       `db:"is_featured" json:"is_featured"`
	Status       string     `db:"status" json:"status"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Video struct {
	ID           int64      `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Slug         string     `db:"slug" json:"slug"`
	Description  string     `db:"description" json:"description"`
	YouTubeURL   string     `db:"youtube_url" json:"youtube_url"`
	YouTubeID    string     `db:"youtube_id" json:"youtube_id"`
	ThumbnailURL string     `db:"thumbnail_url" json:"thumbnail_url"`
	VideoType    string     `db:"video_type" json:"video_type"`
	Duration     int        `db:"duration" json:"duration"`
	CategoryName string     `db:"category_name" json:"category_name"`
	Status       string     `db:"status" json:"status"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ContentView is the flattened view of a content item the notification
// pipeline consumes. Articles and videos are structurally identical here,
// only the URL path and a couple of descriptive fields differ.
type ContentView struct {
	Kind         string
	ID           int64
	Title        string
	Excerpt      string
	Slug         string
	ThumbnailURL string
	AuthorName   string
	CategoryName string
	VideoType    string
	YouTubeURL   string
	Status       string
}

// View flattens an article for the notification pipeline.
func (a *Article) View() ContentView {
	return ContentView{
		Kind:         KindArticle,
		ID:           a.ID,
		Title:        a.Title,
		Excerpt:      a.Excerpt,
		Slug:         a.Slug,
		ThumbnailURL: a.ImageURL,
		AuthorName:   a.AuthorName,
		CategoryName: a.CategoryName,
		Status:       a.Status,
	}
}

// View flattens a video for the notification pipeline.
func (v *Video) View() ContentView {
	return ContentView{
		Kind:         KindVideo,
		ID:           v.ID,
		Title:        v.Title,
		Excerpt:      v.Description,
		Slug:         v.Slug,
		ThumbnailURL: v.ThumbnailURL,
		CategoryName: v.CategoryName,
		VideoType:    v.VideoType,
		YouTubeURL:   v.YouTubeURL,
		Status:       v.Status,
	}
}
