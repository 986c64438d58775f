package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"devevent/internal/domain"
)

const pendingEventColumns = `id, title, slug, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, submitted_by, created_at, updated_at`

type pendingEventRepository struct {
	DB *sql.DB
}

func NewPendingEventRepository(db *sql.DB) domain.PendingEventRepository {
	return &pendingEventRepository{
		DB: db,
	}
}

func scanPendingEvent(row interface{ Scan(...any) error }) (*domain.PendingEvent, error) {
	p := &domain.PendingEvent{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Overview, &p.Image,
		&p.Venue, &p.Location, &p.Date, &p.Time, &p.Mode,
		pq.Array(&p.Audience), pq.Array(&p.Agenda), &p.Organizer, pq.Array(&p.Tags),
		&p.SubmittedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pendingEventRepository) Create(ctx context.Context, p *domain.PendingEvent) error {
	query := `
		INSERT INTO pending_events (title, slug, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, submitted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Description, p.Overview, p.Image, p.Venue, p.Location,
		p.Date, p.Time, p.Mode, pq.Array(p.Audience), pq.Array(p.Agenda),
		p.Organizer, pq.Array(p.Tags), p.SubmittedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *pendingEventRepository) GetByID(ctx context.Context, id string) (*domain.PendingEvent, error) {
	query := `SELECT ` + pendingEventColumns + ` FROM pending_events WHERE id = $1`
	p, err := scanPendingEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidIDSyntax(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *pendingEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.PendingEvent, error) {
	// Slugs are not unique here; the most recent submission wins.
	query := `SELECT ` + pendingEventColumns + ` FROM pending_events WHERE slug = $1 ORDER BY created_at DESC LIMIT 1`
	p, err := scanPendingEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *pendingEventRepository) List(ctx context.Context) ([]*domain.PendingEvent, error) {
	query := `SELECT ` + pendingEventColumns + ` FROM pending_events ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]*domain.PendingEvent, 0)
	for rows.Next() {
		p, err := scanPendingEvent(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *pendingEventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM pending_events WHERE id = $1`, id)
	if err != nil {
		if isInvalidIDSyntax(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *pendingEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_events`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
