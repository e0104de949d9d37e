package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

// Interval is a half-open time span [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval length
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Hours returns the interval length in hours
func (iv Interval) Hours() float64 {
	return iv.Duration().Hours()
}

// TotalHours sums the lengths of the intervals in hours
func TotalHours(intervals []Interval) float64 {
	var total time.Duration
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total.Hours()
}

// ComputeFreeBlocks subtracts sleep and fixed events from [dayStart, dayEnd).
// Events are expected to be pre-filtered to the day; anything outside is
// clipped away. Returned intervals are sorted, in the day's location and at
// least constants.MinSlotDuration long.
func ComputeFreeBlocks(dayStart, dayEnd time.Time, events []models.FixedEvent, constraints models.CapacityConstraints) []Interval {
	loc := dayStart.Location()
	busy := sleepIntervals(dayStart, dayEnd, constraints)

	for _, ev := range events {
		if ev.IsAllDay {
			busy = append(busy, Interval{Start: dayStart, End: dayEnd})
			continue
		}
		start := maxTime(ev.Start, dayStart)
		end := minTime(ev.End, dayEnd)
		if start.Before(end) {
			busy = append(busy, Interval{Start: start, End: end})
		}
	}

	merged := mergeIntervals(busy)

	var free []Interval
	cursor := dayStart
	for _, run := range merged {
		if cursor.Before(run.Start) {
			free = append(free, Interval{Start: cursor.In(loc), End: run.Start.In(loc)})
		}
		cursor = maxTime(cursor, run.End)
	}
	if cursor.Before(dayEnd) {
		free = append(free, Interval{Start: cursor.In(loc), End: dayEnd.In(loc)})
	}

	kept := free[:0]
	for _, iv := range free {
		if iv.Duration() >= constants.MinSlotDuration {
			kept = append(kept, iv)
		}
	}
	return kept
}

// sleepIntervals returns the blocked sleep time for the day, split in two
// when the window wraps past midnight.
func sleepIntervals(dayStart, dayEnd time.Time, c models.CapacityConstraints) []Interval {
	sleepStart := atHour(dayStart, c.SleepStartHour)
	sleepEnd := atHour(dayStart, c.SleepEndHour)
	if !c.SleepWraps() {
		return []Interval{{Start: sleepStart, End: sleepEnd}}
	}
	return []Interval{
		{Start: dayStart, End: sleepEnd},
		{Start: sleepStart, End: dayEnd},
	}
}

// mergeIntervals sorts intervals by start and joins any that overlap or touch
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			last.End = maxTime(last.End, iv.End)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
