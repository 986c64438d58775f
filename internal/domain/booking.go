package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// emailPattern matches a simple local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims s and validates its shape.
func NormalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailPattern.MatchString(s) {
		return "", NewValidationError("email", "a valid email address is required")
	}
	return s, nil
}

// Booking is one attendee's reservation for an event, keyed by (event, email).
// Bookings are never updated; they are created once and bulk-deleted when the
// parent event is deleted.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a Booking for the given event and (already normalized)
// email. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage for bookings. Create must enforce both
// the (event_id, email) uniqueness and the event reference at the storage
// layer, returning ErrDuplicateBooking and ErrEventNotFound respectively.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CountAll(ctx context.Context) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Booking, error)
	DeleteAllByEvent(ctx context.Context, eventID string) (int64, error)
}

// BookingService defines the booking operations exposed to handlers.
type BookingService interface {
	Book(ctx context.Context, eventID, email string) (*Booking, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CountAll(ctx context.Context) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Booking, error)
}
