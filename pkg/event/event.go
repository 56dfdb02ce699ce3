package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a planner item. It is a capability tag, not a type
// hierarchy: behavior differences are expressed through predicates such as
// BlocksTime.
type Kind string

const (
	KindEvent   Kind = "event"
	KindTask    Kind = "task"
	KindNote    Kind = "note"
	KindTimeOff Kind = "timeOff"
)

// BlocksTime reports whether items of this kind occupy time on the agenda.
// Notes are attached to a day without consuming any of it.
func (k Kind) BlocksTime() bool {
	return k != KindNote
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEvent, KindTask, KindNote, KindTimeOff:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown event kind: %q", s)
}

// Repeat is the recurrence frequency of an event, always relative to the
// event's anchor date.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

func ParseRepeat(s string) (Repeat, error) {
	switch Repeat(s) {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return Repeat(s), nil
	}
	return "", fmt.Errorf("unknown repeat frequency: %q", s)
}

// TimeOfDay is a wall-clock time without a date, minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day to the given calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// Event is a planner item. Date is the anchor date: for one-off events the
// only date the event appears on, for recurring events the date the
// recurrence counts from.
type Event struct {
	UID         uuid.UUID
	Title       string
	Description string
	Date        time.Time
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
	Repeat      Repeat
	Kind        Kind
}

// HasTimeRange reports whether the event occupies a concrete interval of the
// day. An event with only one of start/end set has no usable range.
func (e Event) HasTimeRange() bool {
	return e.StartTime != nil && e.EndTime != nil
}

// Untimed reports whether the event carries no time of day at all. An untimed
// blocking event is treated as occupying its whole day.
func (e Event) Untimed() bool {
	return e.StartTime == nil && e.EndTime == nil
}
