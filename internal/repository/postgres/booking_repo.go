package postgres

import (
	"context"
	"database/sql"

	"devevent/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).
		Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBooking
		}
		if isForeignKeyViolation(err) || isInvalidIDSyntax(err) {
			return domain.ErrEventNotFound
		}
		return err
	}
	return nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).
		Scan(&count)
	if err != nil {
		if isInvalidIDSyntax(err) {
			return 0, domain.ErrEventNotFound
		}
		return 0, err
	}
	return count, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookingRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	// The join keeps rows for deleted events out of the result even if a
	// cascade was interrupted partway.
	query := `
		SELECT b.id, b.event_id, b.email, b.created_at, b.updated_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.event_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		if isInvalidIDSyntax(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) DeleteAllByEvent(ctx context.Context, eventID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
