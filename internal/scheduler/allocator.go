package scheduler

import (
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

// Allocation is the result of placing one goal into one day's free time
type Allocation struct {
	Blocks    []models.PlannedBlock
	Allocated time.Duration
	// Free is the free set handed to the next goal in priority order
	Free []Interval
}

// AllocateGoal consumes up to budget of free time for goal. Intervals inside
// one of the goal's preferred windows are used first; each interval is taken
// from its start and a remainder is kept only if it is still a usable slot.
// The input slice is not modified.
func AllocateGoal(goal models.Goal, free []Interval, budget time.Duration) Allocation {
	ordered := orderByPreference(goal, free)

	result := Allocation{Free: make([]Interval, 0, len(ordered))}
	need := budget
	for _, slot := range ordered {
		if need <= 0 {
			result.Free = append(result.Free, slot)
			continue
		}

		take := min(need, slot.Duration())
		taken := Interval{Start: slot.Start, End: slot.Start.Add(take)}
		result.Blocks = append(result.Blocks, models.PlannedBlock{
			GoalID:   goal.ID,
			GoalName: goal.Name,
			Category: goal.Category,
			Start:    taken.Start,
			End:      taken.End,
		})
		need -= take
		result.Allocated += take

		if rest := slot.End.Sub(taken.End); rest >= constants.MinSlotDuration {
			result.Free = append(result.Free, Interval{Start: taken.End, End: slot.End})
		}
	}
	return result
}

// orderByPreference puts slots inside any preferred window first, keeping the
// relative order within both groups.
func orderByPreference(goal models.Goal, free []Interval) []Interval {
	ordered := make([]Interval, 0, len(free))
	var other []Interval
	for _, slot := range free {
		if inAnyWindow(slot, goal.PreferredWindows) {
			ordered = append(ordered, slot)
		} else {
			other = append(other, slot)
		}
	}
	return append(ordered, other...)
}

// inAnyWindow tests whole-slot containment by hour of day
func inAnyWindow(slot Interval, windows []constants.TimeWindow) bool {
	for _, w := range windows {
		lo, hi, ok := models.WindowBounds(w)
		if !ok {
			continue
		}
		if slot.Start.Hour() >= lo && slot.End.Hour() <= hi {
			return true
		}
	}
	return false
}
