package models

import (
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
)

// Goal is a recurring, priority-weighted time demand
type Goal struct {
	ID                string                 `json:"id" yaml:"id"`
	Name              string                 `json:"name" yaml:"name"`
	Category          constants.GoalCategory `json:"category" yaml:"category"`
	PriorityWeight    int                    `json:"priority_weight" yaml:"priority_weight"`
	WeeklyTargetHours float64                `json:"weekly_target_hours" yaml:"weekly_target_hours"`
	PreferredWindows  []constants.TimeWindow `json:"preferred_time_windows" yaml:"preferred_time_windows"`
	HardDeadline      *time.Time             `json:"hard_deadline,omitempty" yaml:"hard_deadline,omitempty"`
	CreatedAt         time.Time              `json:"created_at" yaml:"created_at"`
	DeletedAt         *time.Time             `json:"deleted_at,omitempty" yaml:"-"`
}

// GoalDraft holds the user-supplied fields of a goal before it is stored
type GoalDraft struct {
	Name              string                 `json:"name" yaml:"name"`
	Category          constants.GoalCategory `json:"category" yaml:"category"`
	PriorityWeight    int                    `json:"priority_weight" yaml:"priority_weight"`
	WeeklyTargetHours float64                `json:"weekly_target_hours" yaml:"weekly_target_hours"`
	PreferredWindows  []constants.TimeWindow `json:"preferred_time_windows" yaml:"preferred_time_windows"`
	HardDeadline      *time.Time             `json:"hard_deadline,omitempty" yaml:"hard_deadline,omitempty"`
}

// NewGoalDraft returns a draft with the default category, weight and target
func NewGoalDraft(name string) GoalDraft {
	return GoalDraft{
		Name:              name,
		Category:          constants.DefaultGoalCategory,
		PriorityWeight:    constants.DefaultPriorityWeight,
		WeeklyTargetHours: constants.DefaultWeeklyTarget,
	}
}

// ApplyDefaults fills an empty category with the default. Weight and hours
// are left alone: an explicit 0 there is invalid, not unset. Use NewGoalDraft
// to seed them.
func (d GoalDraft) ApplyDefaults() GoalDraft {
	if d.Category == "" {
		d.Category = constants.DefaultGoalCategory
	}
	return d
}

// ToGoal materialises the draft as a goal with the given identity
func (d GoalDraft) ToGoal(id string, createdAt time.Time) Goal {
	windows := make([]constants.TimeWindow, len(d.PreferredWindows))
	copy(windows, d.PreferredWindows)
	return Goal{
		ID:                id,
		Name:              d.Name,
		Category:          d.Category,
		PriorityWeight:    d.PriorityWeight,
		WeeklyTargetHours: d.WeeklyTargetHours,
		PreferredWindows:  windows,
		HardDeadline:      d.HardDeadline,
		CreatedAt:         createdAt,
	}
}

// Draft returns the user-supplied fields of the goal
func (g Goal) Draft() GoalDraft {
	return GoalDraft{
		Name:              g.Name,
		Category:          g.Category,
		PriorityWeight:    g.PriorityWeight,
		WeeklyTargetHours: g.WeeklyTargetHours,
		PreferredWindows:  g.PreferredWindows,
		HardDeadline:      g.HardDeadline,
	}
}
