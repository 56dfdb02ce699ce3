package freetime

import (
	"time"

	"github.com/agendo/agendo/pkg/event"
)

// Window is the open-for-business boundary of a day within which free time
// is computed.
type Window struct {
	Start event.TimeOfDay
	End   event.TimeOfDay
}

// FreeSlots computes the unscheduled intervals of the given date. The events
// must already be filtered to the ones occurring on that date and blocking
// time; the calculator only looks at their time ranges.
//
// An untimed blocking event occupies the whole day, so its presence yields no
// free time at all. This mirrors how all-day entries behave on the agenda: we
// deliberately do not guess a default duration for them.
func FreeSlots(events []event.Event, date time.Time, window Window) []TimeSlot {
	busy := make([]TimeSlot, 0, len(events))
	for _, e := range events {
		if e.Untimed() {
			return []TimeSlot{}
		}
		if !e.HasTimeRange() {
			// A single dangling start or end time is unusable as a range.
			continue
		}
		slot := TimeSlot{Start: e.StartTime.On(date), End: e.EndTime.On(date)}
		if !slot.End.After(slot.Start) {
			continue
		}
		busy = append(busy, slot)
	}

	merged := MergeSlots(busy)

	dayStart := window.Start.On(date)
	dayEnd := window.End.On(date)

	free := make([]TimeSlot, 0, len(merged)+1)
	cursor := dayStart
	for _, slot := range merged {
		if slot.Start.After(cursor) {
			free = append(free, TimeSlot{Start: cursor, End: slot.Start})
		}
		if slot.End.After(cursor) {
			cursor = slot.End
		}
	}
	if cursor.Before(dayEnd) {
		free = append(free, TimeSlot{Start: cursor, End: dayEnd})
	}

	// Clamp to the window and drop anything the gap walk could have left
	// empty at the boundaries.
	result := make([]TimeSlot, 0, len(free))
	for _, slot := range free {
		if slot.Start.Before(dayStart) {
			slot.Start = dayStart
		}
		if slot.End.After(dayEnd) {
			slot.End = dayEnd
		}
		if slot.End.After(slot.Start) {
			result = append(result, slot)
		}
	}
	return result
}
