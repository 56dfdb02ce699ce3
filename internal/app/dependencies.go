package app

import (
	"database/sql"
	"fmt"

	"github.com/agendo/agendo/internal/config"
	"github.com/agendo/agendo/internal/event_bus"
	"github.com/agendo/agendo/internal/utils"
	"github.com/agendo/agendo/pkg/event"
	"github.com/agendo/agendo/pkg/freetime"
	"github.com/agendo/agendo/pkg/search"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	EventRepo    event.Repository
	EventService event.Service
	EventHandler *event.Handler

	FreeTimeService *freetime.Service
	FreeTimeHandler *freetime.Handler

	SearchService search.Service
	SearchHandler *search.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.EventBus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	window, err := dayWindow(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	deps.FreeTimeService = freetime.NewService(deps.EventService, window, deps.EventBus)
	deps.FreeTimeHandler = freetime.NewHandler(deps.FreeTimeService)

	deps.SearchService = search.NewService(deps.EventService, deps.Clock)
	deps.SearchHandler = search.NewHandler(deps.SearchService)

	return deps, nil
}

func dayWindow(cfg config.Schedule) (freetime.Window, error) {
	start, err := event.ParseTimeOfDay(cfg.DayStart)
	if err != nil {
		return freetime.Window{}, fmt.Errorf("invalid schedule.daystart: %w", err)
	}
	end, err := event.ParseTimeOfDay(cfg.DayEnd)
	if err != nil {
		return freetime.Window{}, fmt.Errorf("invalid schedule.dayend: %w", err)
	}
	return freetime.Window{Start: start, End: end}, nil
}
