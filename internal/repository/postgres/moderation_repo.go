package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"devevent/internal/domain"
)

type moderationRepository struct {
	DB *sql.DB
}

// NewModerationRepository returns a ModerationRepository whose Promote runs
// the pending-to-approved copy and the pending delete in one transaction, so
// a crash or a title collision can never leave both records (or neither)
// behind.
func NewModerationRepository(db *sql.DB) domain.ModerationRepository {
	return &moderationRepository{DB: db}
}

func (r *moderationRepository) Promote(ctx context.Context, pendingID string) (*domain.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin promotion: %w", err)
	}
	defer tx.Rollback()

	selectQuery := `
		SELECT ` + pendingEventColumns + `
		FROM pending_events
		WHERE id = $1
		FOR UPDATE
	`
	p, err := scanPendingEvent(tx.QueryRowContext(ctx, selectQuery, pendingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidIDSyntax(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Copy everything except identity and submitted_by; the approved record
	// gets fresh timestamps.
	now := time.Now()
	e := &domain.Event{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Overview:    p.Overview,
		Image:       p.Image,
		Venue:       p.Venue,
		Location:    p.Location,
		Date:        p.Date,
		Time:        p.Time,
		Mode:        p.Mode,
		Audience:    p.Audience,
		Agenda:      p.Agenda,
		Organizer:   p.Organizer,
		Tags:        p.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	insertQuery := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, pq.Array(e.Audience), pq.Array(e.Agenda),
		e.Organizer, pq.Array(e.Tags), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		// Rollback leaves the pending record intact for retry or rejection.
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_events WHERE id = $1`, pendingID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit promotion: %w", err)
	}
	return e, nil
}
