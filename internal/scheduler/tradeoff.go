package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

// ComputeTradeoffs plans with and without newGoal and reports which existing
// goals lose time. Both runs start today (UTC) over the default horizon.
func (s *Scheduler) ComputeTradeoffs(existing []models.Goal, newGoal models.GoalDraft, events []models.FixedEvent, constraints models.CapacityConstraints) models.TradeoffReport {
	return s.ComputeTradeoffsFrom(time.Time{}, existing, newGoal, events, constraints)
}

// ComputeTradeoffsFrom is ComputeTradeoffs with both runs starting on the
// day of start, in start's location. A zero start means today in UTC.
func (s *Scheduler) ComputeTradeoffsFrom(start time.Time, existing []models.Goal, newGoal models.GoalDraft, events []models.FixedEvent, constraints models.CapacityConstraints) models.TradeoffReport {
	start = s.startOfPlan(start)
	without := s.GeneratePlan(existing, events, constraints, PlanOptions{StartDate: start})
	with := s.GeneratePlan(existing, events, constraints, PlanOptions{StartDate: start, SimulateGoal: &newGoal})

	before := without.GoalHours()
	after := with.GoalHours()

	names := make([]string, 0, len(before))
	for name := range before {
		names = append(names, name)
	}
	sort.Strings(names)

	affected := make([]models.TradeoffEntry, 0)
	for _, name := range names {
		if name == newGoal.Name {
			continue
		}
		lost := before[name] - after[name]
		if lost > constants.TradeoffAffectedMinLoss {
			affected = append(affected, models.TradeoffEntry{
				GoalName:  name,
				HoursLost: models.Round(lost, 1),
			})
		}
	}

	newHours := after[newGoal.Name]
	reference := newGoal.WeeklyTargetHours * constants.TradeoffReferenceWeeks

	return models.TradeoffReport{
		NewGoalName:  newGoal.Name,
		NewGoalHours: models.Round(newHours, 1),
		Affected:     affected,
		Feasible:     newHours >= reference*constants.TradeoffFeasibleRatio,
		HoursBefore:  roundHours(before),
		HoursAfter:   roundHours(after),
	}
}

func roundHours(hours map[string]float64) map[string]float64 {
	rounded := make(map[string]float64, len(hours))
	for name, h := range hours {
		rounded[name] = models.Round(h, 1)
	}
	return rounded
}
