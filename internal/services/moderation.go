package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devevent/internal/domain"
)

// defaultSubmitter is stamped on submissions that don't carry a submitter.
const defaultSubmitter = "user"

type moderationService struct {
	pendingRepo    domain.PendingEventRepository
	moderationRepo domain.ModerationRepository
	images         domain.ImageStore
	contextTimeout time.Duration
}

func NewModerationService(
	pendingRepo domain.PendingEventRepository,
	moderationRepo domain.ModerationRepository,
	images domain.ImageStore,
	timeout time.Duration,
) domain.ModerationService {
	return &moderationService{
		pendingRepo:    pendingRepo,
		moderationRepo: moderationRepo,
		images:         images,
		contextTimeout: timeout,
	}
}

func (s *moderationService) Submit(ctx context.Context, draft *domain.EventDraft, submittedBy string) (*domain.PendingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := draft.ToEvent()
	if err != nil {
		return nil, err
	}
	if draft.Image == nil {
		return nil, domain.NewValidationError("image", "image file is required")
	}

	url, err := s.images.Upload(ctx, *draft.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: upload image: %v", domain.ErrUpstream, err)
	}
	event.Image = url

	submittedBy = strings.TrimSpace(submittedBy)
	if submittedBy == "" {
		submittedBy = defaultSubmitter
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	pending := &domain.PendingEvent{
		Event:       *event,
		SubmittedBy: submittedBy,
	}

	// Title collisions against approved events are deliberately not checked
	// here; they surface at approval time.
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, fmt.Errorf("create pending event: %w", err)
	}
	return pending, nil
}

func (s *moderationService) ListPending(ctx context.Context) ([]*domain.PendingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pending, err := s.pendingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	if pending == nil {
		pending = []*domain.PendingEvent{}
	}
	return pending, nil
}

func (s *moderationService) Approve(ctx context.Context, pendingID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.moderationRepo.Promote(ctx, pendingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, err
		}
		return nil, fmt.Errorf("promote pending event: %w", err)
	}
	return event, nil
}

func (s *moderationService) Reject(ctx context.Context, pendingID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Hard delete, no audit trail kept.
	if err := s.pendingRepo.Delete(ctx, pendingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete pending event: %w", err)
	}
	return nil
}
