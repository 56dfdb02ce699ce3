package event

import "time"

// OccursOn decides whether the event is active on the given calendar date,
// applying its recurrence rule. Time of day on either side is ignored.
//
// Recurrence never applies backward: before the anchor date the event does
// not occur regardless of frequency. Invalid combinations (e.g. a day-31
// monthly anchor checked against a 30-day month) evaluate to false, never to
// an error.
func OccursOn(e Event, target time.Time) bool {
	anchor := dateOnly(e.Date)
	day := dateOnly(target)

	// The anchor date itself always occurs, even without recurrence.
	if anchor.Equal(day) {
		return true
	}
	if e.Repeat == RepeatNone || day.Before(anchor) {
		return false
	}

	switch e.Repeat {
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return daysBetween(anchor, day)%7 == 0
	case RepeatMonthly:
		monthsApart := (day.Year()-anchor.Year())*12 + int(day.Month()) - int(anchor.Month())
		if monthsApart < 0 {
			return false
		}
		// A month-end anchor recurs on the last day of each month, so a
		// Jan 31 anchor lands on Feb 28/29, Mar 31, Apr 30 and so on.
		if isLastDayOfMonth(anchor) {
			return isLastDayOfMonth(day)
		}
		// Months that lack the anchor's day number are skipped entirely.
		return day.Day() == anchor.Day()
	}
	return false
}

// dateOnly strips the time of day, normalizing to UTC midnight so that
// interval arithmetic is immune to DST shifts in the input location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of days from a to b. Both arguments
// must already be normalized by dateOnly.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
