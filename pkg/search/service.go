package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/agendo/agendo/internal/utils"
	"github.com/agendo/agendo/pkg/datequery"
	"github.com/agendo/agendo/pkg/event"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Search matches events against the query both as a fuzzy date
	// expression and as a plain substring over the text fields. Events whose
	// anchor date satisfies the parsed date query are ranked ahead of
	// substring matches; the combined list is de-duplicated.
	Search(ctx context.Context, query string) ([]event.Event, error)
}

type ServiceImpl struct {
	events event.Service
	clock  utils.Clock
}

func NewService(events event.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{events: events, clock: clock}
}

func (s *ServiceImpl) Search(ctx context.Context, query string) ([]event.Event, error) {
	all, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	dateQuery := datequery.Parse(query, s.clock.Now())
	if dateQuery != nil {
		log.Debugf("query %q parsed as date filter %+v", query, *dateQuery)
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	var dateMatches []event.Event
	var textMatches []event.Event
	for _, e := range all {
		if dateQuery != nil && dateQuery.Matches(e.Date) {
			dateMatches = append(dateMatches, e)
		}
		if needle != "" && matchesText(e, needle) {
			textMatches = append(textMatches, e)
		}
	}

	results := make([]event.Event, 0, len(dateMatches)+len(textMatches))
	seen := make(map[uuid.UUID]bool, len(dateMatches)+len(textMatches))
	for _, e := range append(dateMatches, textMatches...) {
		if seen[e.UID] {
			continue
		}
		seen[e.UID] = true
		results = append(results, e)
	}
	return results, nil
}

func matchesText(e event.Event, needle string) bool {
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle)
}
