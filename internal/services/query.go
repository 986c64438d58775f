package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devevent/internal/domain"
)

// similarEventsLimit caps the similar-events result set. Ranking is by
// shared-tag count, then recency.
const similarEventsLimit = 6

type queryService struct {
	eventRepo      domain.EventRepository
	pendingRepo    domain.PendingEventRepository
	contextTimeout time.Duration
}

func NewQueryService(
	eventRepo domain.EventRepository,
	pendingRepo domain.PendingEventRepository,
	timeout time.Duration,
) domain.QueryService {
	return &queryService{
		eventRepo:      eventRepo,
		pendingRepo:    pendingRepo,
		contextTimeout: timeout,
	}
}

func (s *queryService) FindEventBySlug(ctx context.Context, slug string) (*domain.SlugLookup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.findBySlug(ctx, slug)
}

func (s *queryService) findBySlug(ctx context.Context, slug string) (*domain.SlugLookup, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err == nil {
		return &domain.SlugLookup{Event: event, IsPending: false}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	pending, err := s.pendingRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get pending event by slug: %w", err)
	}
	return &domain.SlugLookup{Event: &pending.Event, IsPending: true}, nil
}

func (s *queryService) FindSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lookup, err := s.findBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Only approved events qualify as similar; pending ones never surface
	// here even when the source event itself is pending.
	similar, err := s.eventRepo.ListSimilar(ctx, lookup.Event.Tags, lookup.Event.ID, similarEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar, nil
}
