package controllers

import (
	"context"
	"io"
	"log/slog"

	"devevent/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeEventService struct {
	created *domain.Event
	listed  []*domain.Event
	total   int
	err     error
}

func (f *fakeEventService) Create(ctx context.Context, draft *domain.EventDraft) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeEventService) Update(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeEventService) Delete(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeEventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeEventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.listed, f.total, nil
}

type fakeModerationService struct {
	pending  *domain.PendingEvent
	listed   []*domain.PendingEvent
	approved *domain.Event
	err      error
}

func (f *fakeModerationService) Submit(ctx context.Context, draft *domain.EventDraft, submittedBy string) (*domain.PendingEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pending, nil
}

func (f *fakeModerationService) ListPending(ctx context.Context) ([]*domain.PendingEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listed, nil
}

func (f *fakeModerationService) Approve(ctx context.Context, pendingID string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.approved, nil
}

func (f *fakeModerationService) Reject(ctx context.Context, pendingID string) error {
	return f.err
}

type fakeQueryService struct {
	lookup  *domain.SlugLookup
	similar []*domain.Event
	err     error
}

func (f *fakeQueryService) FindEventBySlug(ctx context.Context, slug string) (*domain.SlugLookup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lookup, nil
}

func (f *fakeQueryService) FindSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.similar, nil
}

type fakeBookingService struct {
	booking *domain.Booking
	listed  []*domain.Booking
	count   int
	err     error

	lastEventID string
	lastEmail   string
}

func (f *fakeBookingService) Book(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID, f.lastEmail = eventID, email
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) CountByEvent(ctx context.Context, eventID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakeBookingService) CountAll(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakeBookingService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listed, nil
}

type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) VerifyAdminCode(ctx context.Context, code string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}
