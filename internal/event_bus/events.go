package event_bus

import "time"

// PlannerEventChanged is published whenever a planner event is created,
// updated, or deleted. Date is the anchor date of the affected event and
// Recurring tells whether the change can affect more days than the anchor.
type PlannerEventChanged struct {
	UID       string
	Date      time.Time
	Recurring bool
}

const (
	PlannerEventCreated EventType = "planner_event.created"
	PlannerEventUpdated EventType = "planner_event.updated"
	PlannerEventDeleted EventType = "planner_event.deleted"
)
