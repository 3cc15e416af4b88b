package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/model"
)

type VideoRepositoryInterface interface {
	Create(ctx context.Context, v *model.Video) error
	// Update persists the video and returns its status before the update.
	Update(ctx context.Context, v *model.Video) (string, error)
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	GetBySlug(ctx context.Context, slug string) (*model.Video, error)
	List(ctx context.Context, offset, limit int, videoType, status string) ([]*model.Video, int, error)
}

type VideoRepository struct {
	DB *sql.DB
}

const videoColumns = `id, title, slug, description, youtube_url, youtube_id, thumbnail_url,
        video_type, duration, category_name, status, published_at, created_at, updated_at`

func scanVideo(row interface{ Scan(...any) error }) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.Title, &v.Slug, &v.Description, &v.YouTubeURL, &v.YouTubeID,
		&v.ThumbnailURL, &v.VideoType, &v.Duration, &v.CategoryName,
		&v.Status, &v.PublishedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) Create(ctx context.Context, v *model.Video) error {
	v.CreatedAt = time.Now()
	if v.Status == "" {
		v.Status = model.StatusDraft
	}
	if v.VideoType == "" {
		v.VideoType = model.VideoTypeReportage
	}
	if v.Status == model.StatusPublished && v.PublishedAt == nil {
		now := time.Now()
		v.PublishedAt = &now
	}
	query := `
        INSERT INTO videos (title, slug, description, youtube_url, youtube_id, thumbnail_url,
            video_type, duration, category_name, status, published_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		v.Title, v.Slug, v.Description, v.YouTubeURL, v.YouTubeID, v.ThumbnailURL,
		v.VideoType, v.Duration, v.CategoryName, v.Status, v.PublishedAt, v.CreatedAt,
	).Scan(&v.ID)
}

func (r *VideoRepository) Update(ctx context.Context, v *model.Video) (string, error) {
	if v.Status == model.StatusPublished && v.PublishedAt == nil {
		now := time.Now()
		v.PublishedAt = &now
	}
	query := `
        WITH prev AS (
            SELECT status FROM videos WHERE id = $1
        )
        UPDATE videos
        SET title=$2, slug=$3, description=$4, youtube_url=$5, youtube_id=$6,
            thumbnail_url=$7, video_type=$8, duration=$9, category_name=$10,
            status=$11, published_at=$12, updated_at=NOW()
        WHERE id=$1
        RETURNING (SELECT status FROM prev)
    `
	var previousStatus string
	err := r.DB.QueryRowContext(ctx, query,
		v.ID, v.Title, v.Slug, v.Description, v.YouTubeURL, v.YouTubeID,
		v.ThumbnailURL, v.VideoType, v.Duration, v.CategoryName, v.Status, v.PublishedAt,
	).Scan(&previousStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", appErrors.NewContentNotFound(model.KindVideo, v.ID)
		}
		return "", err
	}
	return previousStatus, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id=$1`
	v, err := scanVideo(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewContentNotFound(model.KindVideo, id)
		}
		return nil, err
	}
	return v, nil
}

func (r *VideoRepository) GetBySlug(ctx context.Context, slug string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE slug=$1`
	v, err := scanVideo(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *VideoRepository) List(ctx context.Context, offset, limit int, videoType, status string) ([]*model.Video, int, error) {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := sb.Select(
		"id", "title", "slug", "description", "youtube_url", "youtube_id",
		"thumbnail_url", "video_type", "duration", "category_name", "status",
		"published_at", "created_at", "updated_at",
	).From("videos")
	countBuilder := sb.Select("COUNT(*)").From("videos")

	if videoType != "" {
		builder = builder.Where(sq.Eq{"video_type": videoType})
		countBuilder = countBuilder.Where(sq.Eq{"video_type": videoType})
	}
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
		countBuilder = countBuilder.Where(sq.Eq{"status": status})
	}

	query, args, err := builder.
		OrderBy("published_at DESC NULLS LAST", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, err
		}
		videos = append(videos, v)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

var _ VideoRepositoryInterface = (*VideoRepository)(nil)
