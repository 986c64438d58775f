package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devevent/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	images         domain.ImageStore
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	images domain.ImageStore,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		images:         images,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, draft *domain.EventDraft) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := draft.ToEvent()
	if err != nil {
		return nil, err
	}
	if draft.Image == nil {
		return nil, domain.NewValidationError("image", "image file is required")
	}

	// Pre-check for a friendlier duplicate message; the unique index on the
	// events table is still the authority under concurrency.
	if _, err := s.eventRepo.GetByTitle(ctx, event.Title, ""); err == nil {
		return nil, domain.ErrDuplicateTitle
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check duplicate title: %w", err)
	}

	// The upload must succeed before anything is persisted; a failure here
	// aborts the create with no partial record.
	url, err := s.images.Upload(ctx, *draft.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: upload image: %v", domain.ErrUpstream, err)
	}
	event.Image = url

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	titleChanged := upd.TitleChanged(event.Title)
	if err := upd.ApplyTo(event); err != nil {
		return nil, err
	}

	if titleChanged {
		if _, err := s.eventRepo.GetByTitle(ctx, event.Title, id); err == nil {
			return nil, domain.ErrDuplicateTitle
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check duplicate title: %w", err)
		}
	}

	if upd.Image != nil {
		url, err := s.images.Upload(ctx, *upd.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: upload image: %v", domain.ErrUpstream, err)
		}
		event.Image = url
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	// The event store does not cascade; dependent bookings go first.
	if _, err := s.bookingRepo.DeleteAllByEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event bookings: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}
