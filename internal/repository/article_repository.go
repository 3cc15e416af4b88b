package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/model"
)

type ArticleRepositoryInterface interface {
	Create(ctx context.Context, a *model.Article) error
	// Update persists the article and returns its status before the update,
	// which the publication trigger needs to detect draft -> published.
	Update(ctx context.Context, a *model.Article) (string, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	List(ctx context.Context, offset, limit int, category, status string) ([]*model.Article, int, error)
}

type ArticleRepository struct {
	DB *sql.DB
}

const articleColumns = `id, title, slug, excerpt, content, image_url, author_name, category_name,
        reading_time, views_count, is_featured, status, published_at, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL,
		&a.AuthorName, &a.CategoryName, &a.ReadingTime, &a.ViewsCount,
		&a.IsFeatured, &a.Status, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *model.Article) error {
	a.CreatedAt = time.Now()
	if a.Status == "" {
		a.Status = model.StatusDraft
	}
	if a.Status == model.StatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	query := `
        INSERT INTO articles (title, slug, excerpt, content, image_url, author_name, category_name,
            reading_time, is_featured, status, published_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		a.Title, a.Slug, a.Excerpt, a.Content, a.ImageURL, a.AuthorName, a.CategoryName,
		a.ReadingTime, a.IsFeatured, a.Status, a.PublishedAt, a.CreatedAt,
	).Scan(&a.ID)
}

func (r *ArticleRepository) Update(ctx context.Context, a *model.Article) (string, error) {
	if a.Status == model.StatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	query := `
        WITH prev AS (
            SELECT status FROM articles WHERE id = $1
        )
        UPDATE articles
        SET title=$2, slug=$3, excerpt=$4, content=$5, image_url=$6, author_name=$7,
            category_name=$8, reading_time=$9, is_featured=$10, status=$11,
            published_at=$12, updated_at=NOW()
        WHERE id=$1
        RETURNING (SELECT status FROM prev)
    `
	var previousStatus string
	err := r.DB.QueryRowContext(ctx, query,
		a.ID, a.Title, a.Slug, a.Excerpt, a.Content, a.ImageURL, a.AuthorName,
		a.CategoryName, a.ReadingTime, a.IsFeatured, a.Status, a.PublishedAt,
	).Scan(&previousStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", appErrors.NewContentNotFound(model.KindArticle, a.ID)
		}
		return "", err
	}
	return previousStatus, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id=$1`
	a, err := scanArticle(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewContentNotFound(model.KindArticle, id)
		}
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug=$1`
	a, err := scanArticle(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) List(ctx context.Context, offset, limit int, category, status string) ([]*model.Article, int, error) {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := sb.Select(
		"id", "title", "slug", "excerpt", "content", "image_url", "author_name",
		"category_name", "reading_time", "views_count", "is_featured", "status",
		"published_at", "created_at", "updated_at",
	).From("articles")
	countBuilder := sb.Select("COUNT(*)").From("articles")

	if category != "" {
		builder = builder.Where(sq.Eq{"category_name": category})
		countBuilder = countBuilder.Where(sq.Eq{"category_name": category})
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

	articles := []*model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

var _ ArticleRepositoryInterface = (*ArticleRepository)(nil)
