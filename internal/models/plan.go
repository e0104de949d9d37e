package models

import (
	"math"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
)

// PlannedBlock is one labelled interval of a plan
type PlannedBlock struct {
	GoalID   string                 `json:"goal_id"`
	GoalName string                 `json:"goal_name"`
	Category constants.GoalCategory `json:"category"`
	Start    time.Time              `json:"start"`
	End      time.Time              `json:"end"`
	IsFixed  bool                   `json:"is_fixed"`
}

// Duration returns the block length
func (b PlannedBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Hours returns the block length in hours
func (b PlannedBlock) Hours() float64 {
	return b.Duration().Hours()
}

// UnmetGoal reports a goal whose allocation fell short of its pro-rated target
type UnmetGoal struct {
	GoalID         string  `json:"goal_id"`
	GoalName       string  `json:"goal_name"`
	TargetHours    float64 `json:"target_hours"`
	AllocatedHours float64 `json:"allocated_hours"`
	DeficitHours   float64 `json:"deficit_hours"`
}

// DayCapacity summarises free and allocated time for one day
type DayCapacity struct {
	Date           string  `json:"date"` // YYYY-MM-DD format
	TotalHours     float64 `json:"total_hours"`
	AllocatedHours float64 `json:"allocated_hours"`
	SpareHours     float64 `json:"spare_hours"`
}

// PlanResponse is the result of one planning run
type PlanResponse struct {
	StartDate        string         `json:"start_date"` // YYYY-MM-DD format
	Days             int            `json:"days"`
	GeneratedAt      time.Time      `json:"generated_at"`
	Blocks           []PlannedBlock `json:"blocks"`
	Unmet            []UnmetGoal    `json:"unmet"`
	CapacityByDay    []DayCapacity  `json:"capacity_by_day"`
	CoachingMessages []string       `json:"coaching_messages"`
}

// GoalHours sums non-fixed block hours per goal name
func (p PlanResponse) GoalHours() map[string]float64 {
	hours := make(map[string]float64)
	for _, b := range p.Blocks {
		if b.IsFixed {
			continue
		}
		hours[b.GoalName] += b.Hours()
	}
	return hours
}

// FixedBlocks returns the blocks that come from fixed events
func (p PlanResponse) FixedBlocks() []PlannedBlock {
	var fixed []PlannedBlock
	for _, b := range p.Blocks {
		if b.IsFixed {
			fixed = append(fixed, b)
		}
	}
	return fixed
}

// TradeoffEntry is one goal that loses time to a new goal
type TradeoffEntry struct {
	GoalName  string  `json:"goal_name"`
	HoursLost float64 `json:"hours_lost"`
}

// TradeoffReport describes the cost of adding a hypothetical goal
type TradeoffReport struct {
	NewGoalName  string             `json:"new_goal_name"`
	NewGoalHours float64            `json:"new_goal_hours"`
	Affected     []TradeoffEntry    `json:"affected"`
	Feasible     bool               `json:"feasible"`
	HoursBefore  map[string]float64 `json:"hours_before"`
	HoursAfter   map[string]float64 `json:"hours_after"`
}

// HoursToDuration converts fractional hours to a duration truncated to whole seconds
func HoursToDuration(hours float64) time.Duration {
	if hours <= 0 {
		return 0
	}
	return time.Duration(hours * float64(time.Hour)).Truncate(time.Second)
}

// Round rounds v to the given number of decimal places
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
