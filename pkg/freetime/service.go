package freetime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agendo/agendo/internal/event_bus"
	"github.com/agendo/agendo/pkg/event"
	log "github.com/sirupsen/logrus"
)

// Service resolves a date's free time: it asks the event service for the
// events occurring on that date, keeps the time-blocking ones, and runs the
// calculator against the configured day window.
//
// Results are cached per date. The cache is invalidated through the event bus
// whenever a planner event changes; a change to a recurring event can affect
// arbitrarily many dates, so it clears the whole cache.
type Service struct {
	events event.Service
	window Window

	mu    sync.Mutex
	cache map[string][]TimeSlot
}

func NewService(events event.Service, window Window, bus *event_bus.EventBus) *Service {
	s := &Service{
		events: events,
		window: window,
		cache:  make(map[string][]TimeSlot),
	}
	if bus != nil {
		for _, eventType := range []event_bus.EventType{
			event_bus.PlannerEventCreated,
			event_bus.PlannerEventUpdated,
			event_bus.PlannerEventDeleted,
		} {
			event_bus.SubscribeTyped[event_bus.PlannerEventChanged](
				bus,
				eventType,
				func(e event_bus.EventT[event_bus.PlannerEventChanged]) error {
					s.invalidate(e.Data)
					return nil
				})
		}
	}
	return s
}

// FreeSlotsOn returns the unscheduled intervals of the given date within the
// configured day window, in chronological order.
func (s *Service) FreeSlotsOn(ctx context.Context, date time.Time) ([]TimeSlot, error) {
	key := cacheKey(date)

	s.mu.Lock()
	if slots, ok := s.cache[key]; ok {
		s.mu.Unlock()
		log.Tracef("free time cache hit for %s", key)
		return slots, nil
	}
	s.mu.Unlock()

	occurring, err := s.events.EventsOnDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve events for %s: %w", key, err)
	}

	blocking := make([]event.Event, 0, len(occurring))
	for _, e := range occurring {
		if e.Kind.BlocksTime() {
			blocking = append(blocking, e)
		}
	}

	slots := FreeSlots(blocking, date, s.window)

	s.mu.Lock()
	s.cache[key] = slots
	s.mu.Unlock()

	return slots, nil
}

func (s *Service) invalidate(change event_bus.PlannerEventChanged) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if change.Recurring {
		s.cache = make(map[string][]TimeSlot)
		return
	}
	delete(s.cache, cacheKey(change.Date))
}

func cacheKey(date time.Time) string {
	return date.Format("2006-01-02")
}
