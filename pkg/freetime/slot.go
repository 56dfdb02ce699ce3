package freetime

import (
	"sort"
	"time"
)

// TimeSlot is a half-open interval of time within a single day.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// MergeSlots sorts the slots by start time and coalesces every overlapping or
// touching pair into one busy interval. The operation is idempotent: merging
// an already merged list returns it unchanged.
func MergeSlots(slots []TimeSlot) []TimeSlot {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []TimeSlot{sorted[0]}
	for _, slot := range sorted[1:] {
		current := &merged[len(merged)-1]
		if slot.Start.After(current.End) {
			merged = append(merged, slot)
			continue
		}
		if slot.End.After(current.End) {
			current.End = slot.End
		}
	}
	return merged
}
