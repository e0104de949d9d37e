package models

import "github.com/julianstephens/chronoforge/internal/constants"

type hourRange struct {
	lo, hi int
}

var windowBounds = map[constants.TimeWindow]hourRange{
	constants.WindowMorning:   {7, 12},
	constants.WindowAfternoon: {12, 17},
	constants.WindowEvening:   {17, 22},
}

// WindowBounds returns the [lo, hi) hour range of a time window.
// ok is false for windows outside the known set.
func WindowBounds(w constants.TimeWindow) (lo, hi int, ok bool) {
	r, ok := windowBounds[w]
	return r.lo, r.hi, ok
}

// IsValidWindow reports whether w is one of the known time windows
func IsValidWindow(w constants.TimeWindow) bool {
	_, ok := windowBounds[w]
	return ok
}

// IsValidCategory reports whether c is one of the known goal categories
func IsValidCategory(c constants.GoalCategory) bool {
	for _, known := range constants.GoalCategories {
		if c == known {
			return true
		}
	}
	return false
}
