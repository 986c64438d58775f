package domain

import (
	"context"
	"strings"
	"time"
)

// EventMode is the delivery mode of an event.
type EventMode string

// Allowed event modes.
const (
	ModeOnline  EventMode = "online"
	ModeOffline EventMode = "offline"
	ModeHybrid  EventMode = "hybrid"
)

// Valid reports whether m is one of the allowed modes.
func (m EventMode) Valid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// Event is an approved, publicly listed event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, 24-hour
	Mode        EventMode `json:"mode"`
	Audience    []string  `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PendingEvent is a submitted-but-unreviewed event. It lives in a separate
// store so it never shows up in public listings until approved.
// swagger:model PendingEvent
type PendingEvent struct {
	Event
	SubmittedBy string `json:"submitted_by"`
}

// EventDraft is the validated input for creating an event or submitting one
// for review. The image is raw bytes; the store URL is filled in after upload.
type EventDraft struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Organizer   string
	Audience    []string
	Agenda      []string
	Tags        []string
	Image       *ImageUpload
}

// ToEvent normalizes and validates the draft and returns the resulting Event
// (without ID, image URL, or timestamps). On bad input it returns a
// *ValidationError listing every offending field.
func (d *EventDraft) ToEvent() (*Event, error) {
	v := &ValidationError{}

	e := &Event{
		Title:       trimRequired(v, "title", d.Title),
		Description: trimRequired(v, "description", d.Description),
		Overview:    trimRequired(v, "overview", d.Overview),
		Venue:       trimRequired(v, "venue", d.Venue),
		Location:    trimRequired(v, "location", d.Location),
		Organizer:   trimRequired(v, "organizer", d.Organizer),
	}
	e.Slug = Slugify(e.Title)

	mode := EventMode(normalizeMode(d.Mode))
	if !mode.Valid() {
		v.Add("mode", "mode must be online, offline, or hybrid")
	}
	e.Mode = mode

	if date, err := NormalizeDate(d.Date); err != nil {
		v.Add("date", err.Error())
	} else {
		e.Date = date
	}
	if t, err := NormalizeTime(d.Time); err != nil {
		v.Add("time", err.Error())
	} else {
		e.Time = t
	}

	e.Audience = requireList(v, "audience", d.Audience)
	e.Agenda = requireList(v, "agenda", d.Agenda)
	e.Tags = requireList(v, "tags", d.Tags)

	if !v.Empty() {
		return nil, v
	}
	return e, nil
}

// EventUpdate is a partial update for an existing event. Nil fields are left
// unchanged; provided fields are normalized and validated like a create.
type EventUpdate struct {
	Title       *string
	Description *string
	Overview    *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Organizer   *string
	Audience    []string
	Agenda      []string
	Tags        []string
	Image       *ImageUpload
}

// TitleChanged reports whether the update renames the event.
func (u *EventUpdate) TitleChanged(current string) bool {
	return u.Title != nil && strings.TrimSpace(*u.Title) != current
}

// ApplyTo mutates e with the provided fields. A title change regenerates the
// slug. Returns a *ValidationError if any provided field is malformed or
// would blank out a required field.
func (u *EventUpdate) ApplyTo(e *Event) error {
	v := &ValidationError{}

	applyRequired(v, "title", u.Title, &e.Title)
	applyRequired(v, "description", u.Description, &e.Description)
	applyRequired(v, "overview", u.Overview, &e.Overview)
	applyRequired(v, "venue", u.Venue, &e.Venue)
	applyRequired(v, "location", u.Location, &e.Location)
	applyRequired(v, "organizer", u.Organizer, &e.Organizer)

	if u.Title != nil {
		e.Slug = Slugify(e.Title)
	}
	if u.Mode != nil {
		mode := EventMode(normalizeMode(*u.Mode))
		if !mode.Valid() {
			v.Add("mode", "mode must be online, offline, or hybrid")
		} else {
			e.Mode = mode
		}
	}
	if u.Date != nil {
		if date, err := NormalizeDate(*u.Date); err != nil {
			v.Add("date", err.Error())
		} else {
			e.Date = date
		}
	}
	if u.Time != nil {
		if t, err := NormalizeTime(*u.Time); err != nil {
			v.Add("time", err.Error())
		} else {
			e.Time = t
		}
	}
	if u.Audience != nil {
		e.Audience = requireList(v, "audience", u.Audience)
	}
	if u.Agenda != nil {
		e.Agenda = requireList(v, "agenda", u.Agenda)
	}
	if u.Tags != nil {
		e.Tags = requireList(v, "tags", u.Tags)
	}

	if !v.Empty() {
		return v
	}
	return nil
}

// SlugLookup is the result of resolving a slug across both stores.
type SlugLookup struct {
	Event     *Event `json:"event"`
	IsPending bool   `json:"is_pending"`
}

// EventRepository defines storage for approved events.
// Implementations must back slug/title uniqueness with real storage-level
// constraints; a scan-then-insert check alone is not sufficient under
// concurrency.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// GetByTitle matches the title exactly (case-sensitive), excluding
	// excludeID when non-empty.
	GetByTitle(ctx context.Context, title, excludeID string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	// ListSimilar returns events whose tag list intersects tags, excluding
	// excludeID, ranked by shared-tag count then recency, capped at limit.
	ListSimilar(ctx context.Context, tags []string, excludeID string, limit int) ([]*Event, error)
}

// PendingEventRepository defines storage for submitted events awaiting review.
type PendingEventRepository interface {
	Create(ctx context.Context, pending *PendingEvent) error
	GetByID(ctx context.Context, id string) (*PendingEvent, error)
	GetBySlug(ctx context.Context, slug string) (*PendingEvent, error)
	List(ctx context.Context) ([]*PendingEvent, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ModerationRepository owns the cross-store promotion. Promote must be atomic:
// either the pending record becomes an approved event, or nothing changes.
type ModerationRepository interface {
	// Promote copies the pending event into the approved store and deletes
	// the pending record in a single transaction. Returns ErrNotFound if the
	// pending id is absent and ErrDuplicateTitle if the title or slug
	// collides with an approved event; in both cases the pending record is
	// left intact.
	Promote(ctx context.Context, pendingID string) (*Event, error)
}

// EventService defines admin-facing event management.
type EventService interface {
	Create(ctx context.Context, draft *EventDraft) (*Event, error)
	Update(ctx context.Context, id string, upd *EventUpdate) (*Event, error)
	// Delete removes the event and every booking referencing it.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}

// ModerationService orchestrates the submit/approve/reject workflow.
type ModerationService interface {
	Submit(ctx context.Context, draft *EventDraft, submittedBy string) (*PendingEvent, error)
	ListPending(ctx context.Context) ([]*PendingEvent, error)
	Approve(ctx context.Context, pendingID string) (*Event, error)
	Reject(ctx context.Context, pendingID string) error
}

// QueryService is the read-side facade consumed by the public pages.
type QueryService interface {
	// FindEventBySlug looks up the approved store first, then the pending
	// store, tagging the result with IsPending.
	FindEventBySlug(ctx context.Context, slug string) (*SlugLookup, error)
	// FindSimilarEvents resolves slug across both stores and returns approved
	// events sharing at least one tag, excluding the source event.
	FindSimilarEvents(ctx context.Context, slug string) ([]*Event, error)
}
