package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gamedia/editorial-backend/internal/model"
)

type ContactRepositoryInterface interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*model.ContactMessage, error)
	MarkAsRead(ctx context.Context, id int64) error
}

type ContactRepository struct {
	DB *sql.DB
}

func (r *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	m.CreatedAt = time.Now()
	if m.Status == "" {
		m.Status = model.ContactNew
	}
	query := `
        INSERT INTO contact_messages (name, email, subject, message, status, ip_address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		m.Name, m.Email, m.Subject, m.Message, m.Status, m.IPAddress, m.CreatedAt,
	).Scan(&m.ID)
}

// GetByID returns nil when the message does not exist.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	query := `
        SELECT id, name, email, subject, message, status, ip_address, replied_at, created_at
        FROM contact_messages
        WHERE id=$1
    `
	var m model.ContactMessage
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message,
		&m.Status, &m.IPAddress, &m.RepliedAt, &m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ContactRepository) MarkAsRead(ctx context.Context, id int64) error {
	query := `UPDATE contact_messages SET status=$1 WHERE id=$2 AND status=$3`
	_, err := r.DB.ExecContext(ctx, query, model.ContactRead, id, model.ContactNew)
	return err
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
