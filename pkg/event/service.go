package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendo/agendo/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidEvent = errors.New("invalid event")

type Service interface {
	CreateEvent(ctx context.Context, event Event) (*Event, error)
	GetEvent(ctx context.Context, uid uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	// EventsOnDate returns the events active on the given calendar date,
	// recurrence applied. This is the day agenda.
	EventsOnDate(ctx context.Context, date time.Time) ([]Event, error)
	ModifyEvent(ctx context.Context, event Event) (*Event, error)
	DeleteEvent(ctx context.Context, uid uuid.UUID) error
}

type ServiceImpl struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, event Event) (*Event, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	uid, err := s.repo.StoreEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	event.UID = uid

	s.publishChange(ctx, event_bus.PlannerEventCreated, event)

	return &event, nil
}

func (s *ServiceImpl) GetEvent(ctx context.Context, uid uuid.UUID) (*Event, error) {
	return s.repo.GetEvent(ctx, uid)
}

func (s *ServiceImpl) ListEvents(ctx context.Context) ([]Event, error) {
	return s.repo.GetAllEvents(ctx)
}

func (s *ServiceImpl) EventsOnDate(ctx context.Context, date time.Time) ([]Event, error) {
	candidates, err := s.repo.GetEventsAnchoredUpTo(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate events: %w", err)
	}

	occurring := make([]Event, 0, len(candidates))
	for _, candidate := range candidates {
		if OccursOn(candidate, date) {
			occurring = append(occurring, candidate)
		}
	}
	return occurring, nil
}

func (s *ServiceImpl) ModifyEvent(ctx context.Context, event Event) (*Event, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	// Publish the previous anchor too: moving an event to another day must
	// invalidate consumers watching the old date.
	previous, err := s.repo.GetEvent(ctx, event.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.publishChange(ctx, event_bus.PlannerEventUpdated, *previous)
	s.publishChange(ctx, event_bus.PlannerEventUpdated, event)

	return &event, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, uid uuid.UUID) error {
	event, err := s.repo.GetEvent(ctx, uid)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publishChange(ctx, event_bus.PlannerEventDeleted, *event)

	return nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, eventType event_bus.EventType, event Event) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.PlannerEventChanged{
		UID:       event.UID.String(),
		Date:      event.Date,
		Recurring: event.Repeat != RepeatNone,
	}))
	if err != nil {
		// Consumers only maintain derived state, so a failed notification
		// must not fail the write itself.
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}

func validateEvent(event Event) error {
	if event.Date.IsZero() {
		return fmt.Errorf("%w: anchor date is required", ErrInvalidEvent)
	}
	if _, err := ParseKind(string(event.Kind)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if _, err := ParseRepeat(string(event.Repeat)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}
