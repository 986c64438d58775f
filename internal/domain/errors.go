package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared across stores and services. Repositories translate
// storage-level constraint violations into these so callers can branch on the
// error kind all the way up to the HTTP boundary.
var (
	// ErrNotFound is returned when a record is absent from the store it was
	// expected in (by id or slug).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTitle is returned when creating or renaming an event would
	// collide with another event's title (or its derived slug).
	ErrDuplicateTitle = errors.New("an event with this title already exists")

	// ErrDuplicateBooking is returned when the (event, email) pair is already
	// booked.
	ErrDuplicateBooking = errors.New("this email has already booked this event")

	// ErrEventNotFound is returned when a booking references an event that
	// does not exist. Kept distinct from ErrNotFound so callers can tell a
	// missing booking apart from a broken reference.
	ErrEventNotFound = errors.New("referenced event does not exist")

	// ErrUnauthorized is returned when the admin access code or session token
	// is missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream is returned when an external collaborator (image host,
	// mail provider) fails. Wrapped errors carry the cause.
	ErrUpstream = errors.New("upstream service failure")
)

// ValidationError carries a field -> message map for malformed input.
// It is returned instead of a sentinel so the HTTP layer can render a
// per-field error body.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether no field messages have been recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
