package event

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RepositoryStub is an in-memory Repository used by service tests.
type RepositoryStub struct {
	mu     sync.RWMutex
	events map[uuid.UUID]Event
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		events: make(map[uuid.UUID]Event),
	}
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, event Event) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid := uuid.New()
	event.UID = uid
	r.events[uid] = event
	return uid, nil
}

func (r *RepositoryStub) GetEvent(ctx context.Context, uid uuid.UUID) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[uid]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (r *RepositoryStub) GetAllEvents(ctx context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}
	sortEventsByDate(events)
	return events, nil
}

func (r *RepositoryStub) GetEventsAnchoredUpTo(ctx context.Context, date time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]Event, 0, len(r.events))
	for _, event := range r.events {
		if !event.Date.After(date) {
			events = append(events, event)
		}
	}
	sortEventsByDate(events)
	return events, nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[event.UID]; !ok {
		return ErrEventNotFound
	}
	r.events[event.UID] = event
	return nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, uid uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[uid]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, uid)
	return nil
}

func sortEventsByDate(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Title < events[j].Title
	})
}
