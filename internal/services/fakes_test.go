package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"devevent/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	similar   []*domain.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Title == e.Title || existing.Slug == e.Slug {
			return domain.ErrDuplicateTitle
		}
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByTitle(ctx context.Context, title, excludeID string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.Title == title && e.ID != excludeID {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range f.byID {
		if existing.ID != e.ID && (existing.Title == e.Title || existing.Slug == e.Slug) {
			return domain.ErrDuplicateTitle
		}
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (f *fakeEventRepo) ListSimilar(ctx context.Context, tags []string, excludeID string, limit int) ([]*domain.Event, error) {
	return f.similar, nil
}

// fakePendingRepo is an in-memory PendingEventRepository for tests.
type fakePendingRepo struct {
	byID      map[string]*domain.PendingEvent
	nextID    int
	createErr error
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{
		byID:   make(map[string]*domain.PendingEvent),
		nextID: 1,
	}
}

func (f *fakePendingRepo) Create(ctx context.Context, p *domain.PendingEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("pe-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakePendingRepo) GetByID(ctx context.Context, id string) (*domain.PendingEvent, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePendingRepo) GetBySlug(ctx context.Context, slug string) (*domain.PendingEvent, error) {
	var newest *domain.PendingEvent
	for _, p := range f.byID {
		if p.Slug != slug {
			continue
		}
		if newest == nil || p.CreatedAt.After(newest.CreatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, domain.ErrNotFound
	}
	return newest, nil
}

func (f *fakePendingRepo) List(ctx context.Context) ([]*domain.PendingEvent, error) {
	out := make([]*domain.PendingEvent, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePendingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePendingRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeModerationRepo promotes against the same in-memory stores the fakes use.
type fakeModerationRepo struct {
	pending *fakePendingRepo
	events  *fakeEventRepo
}

func (f *fakeModerationRepo) Promote(ctx context.Context, pendingID string) (*domain.Event, error) {
	p, ok := f.pending.byID[pendingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e := p.Event
	e.ID = ""
	if err := f.events.Create(ctx, &e); err != nil {
		// Pending record stays put on collision.
		return nil, err
	}
	delete(f.pending.byID, pendingID)
	return &e, nil
}

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	byID      map[string]*domain.Booking
	nextID    int
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:   make(map[string]*domain.Booking),
		nextID: 1,
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.EventID == b.EventID && existing.Email == b.Email {
			return domain.ErrDuplicateBooking
		}
	}
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	f.nextID++
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	count := 0
	for _, b := range f.byID {
		if b.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

func (f *fakeBookingRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) DeleteAllByEvent(ctx context.Context, eventID string) (int64, error) {
	var deleted int64
	for id, b := range f.byID {
		if b.EventID == eventID {
			delete(f.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeImageStore records uploads and returns a deterministic URL.
type fakeImageStore struct {
	uploads int
	err     error
}

func (f *fakeImageStore) Upload(ctx context.Context, img domain.ImageUpload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return "https://images.test/" + img.Filename, nil
}

// fakeEmailService records confirmations.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
