package datequery

import "time"

// DateQuery is a possibly partial date filter. A zero field is
// unconstrained: {Month: 9} matches every September of every year.
type DateQuery struct {
	Year  int
	Month int
	Day   int
}

// Matches reports whether the date satisfies every constrained field of the
// query. Unset fields are wildcards.
func (q DateQuery) Matches(date time.Time) bool {
	if q.Year != 0 && date.Year() != q.Year {
		return false
	}
	if q.Month != 0 && int(date.Month()) != q.Month {
		return false
	}
	if q.Day != 0 && date.Day() != q.Day {
		return false
	}
	return true
}
