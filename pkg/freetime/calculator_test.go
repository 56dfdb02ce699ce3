package freetime

import (
	"testing"
	"time"

	"github.com/agendo/agendo/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)

func defaultWindow() Window {
	return Window{
		Start: event.TimeOfDay{Hour: 8},
		End:   event.TimeOfDay{Hour: 20},
	}
}

func timedEvent(start, end string) event.Event {
	startTime, _ := event.ParseTimeOfDay(start)
	endTime, _ := event.ParseTimeOfDay(end)
	return event.Event{
		Title:     "busy",
		Date:      testDay,
		StartTime: &startTime,
		EndTime:   &endTime,
		Repeat:    event.RepeatNone,
		Kind:      event.KindEvent,
	}
}

func slot(start, end string) TimeSlot {
	startTime, _ := event.ParseTimeOfDay(start)
	endTime, _ := event.ParseTimeOfDay(end)
	return TimeSlot{Start: startTime.On(testDay), End: endTime.On(testDay)}
}

func TestFreeSlots_EmptyDay(t *testing.T) {
	free := FreeSlots(nil, testDay, defaultWindow())
	assert.Equal(t, []TimeSlot{slot("08:00", "20:00")}, free)
}

func TestFreeSlots_TwoEvents(t *testing.T) {
	events := []event.Event{
		timedEvent("10:00", "11:00"),
		timedEvent("13:00", "13:30"),
	}

	free := FreeSlots(events, testDay, defaultWindow())

	assert.Equal(t, []TimeSlot{
		slot("08:00", "10:00"),
		slot("11:00", "13:00"),
		slot("13:30", "20:00"),
	}, free)
}

func TestFreeSlots_UntimedBlockingEventZeroesTheDay(t *testing.T) {
	events := []event.Event{
		timedEvent("10:00", "11:00"),
		{Title: "all day", Date: testDay, Repeat: event.RepeatNone, Kind: event.KindEvent},
	}

	free := FreeSlots(events, testDay, defaultWindow())
	assert.Empty(t, free)
}

func TestFreeSlots_DanglingSingleTimeIsIgnored(t *testing.T) {
	startOnly, _ := event.ParseTimeOfDay("10:00")
	events := []event.Event{
		{
			Title:     "start but no end",
			Date:      testDay,
			StartTime: &startOnly,
			Repeat:    event.RepeatNone,
			Kind:      event.KindEvent,
		},
	}

	free := FreeSlots(events, testDay, defaultWindow())
	assert.Equal(t, []TimeSlot{slot("08:00", "20:00")}, free)
}

func TestFreeSlots_OverlappingEventsMerge(t *testing.T) {
	events := []event.Event{
		timedEvent("09:00", "11:00"),
		timedEvent("10:00", "12:00"),
		timedEvent("12:00", "13:00"), // adjacent, still one busy block
	}

	free := FreeSlots(events, testDay, defaultWindow())

	assert.Equal(t, []TimeSlot{
		slot("08:00", "09:00"),
		slot("13:00", "20:00"),
	}, free)
}

func TestFreeSlots_ZeroLengthEventIsDiscarded(t *testing.T) {
	events := []event.Event{
		timedEvent("10:00", "10:00"),
		timedEvent("12:00", "11:00"),
	}

	free := FreeSlots(events, testDay, defaultWindow())
	assert.Equal(t, []TimeSlot{slot("08:00", "20:00")}, free)
}

func TestFreeSlots_EventsOutsideWindowAreClamped(t *testing.T) {
	events := []event.Event{
		timedEvent("06:00", "09:00"),
		timedEvent("19:00", "22:00"),
	}

	free := FreeSlots(events, testDay, defaultWindow())
	assert.Equal(t, []TimeSlot{slot("09:00", "19:00")}, free)
}

func TestFreeSlots_FullyBookedDay(t *testing.T) {
	events := []event.Event{timedEvent("08:00", "20:00")}

	free := FreeSlots(events, testDay, defaultWindow())
	assert.Empty(t, free)
}

func TestMergeSlots_Idempotent(t *testing.T) {
	slots := []TimeSlot{
		slot("13:00", "14:00"),
		slot("09:00", "11:00"),
		slot("10:00", "12:00"),
	}

	merged := MergeSlots(slots)
	assert.Equal(t, merged, MergeSlots(merged))
}

func TestFreeSlots_BusyAndFreeReconstructTheWindow(t *testing.T) {
	events := []event.Event{
		timedEvent("09:30", "10:45"),
		timedEvent("12:00", "13:00"),
		timedEvent("12:30", "14:15"),
		timedEvent("19:00", "20:00"),
	}
	window := defaultWindow()

	busy := MergeSlots([]TimeSlot{
		slot("09:30", "10:45"),
		slot("12:00", "14:15"),
		slot("19:00", "20:00"),
	})
	free := FreeSlots(events, testDay, window)

	// Walking busy and free intervals together must tile the window exactly,
	// with no gaps and no overlaps.
	all := MergeSlots(append(append([]TimeSlot{}, busy...), free...))
	require.Len(t, all, 1)
	assert.Equal(t, window.Start.On(testDay), all[0].Start)
	assert.Equal(t, window.End.On(testDay), all[0].End)

	var total time.Duration
	for _, s := range busy {
		total += s.Duration()
	}
	for _, s := range free {
		total += s.Duration()
	}
	assert.Equal(t, 12*time.Hour, total)
}
