package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
)

// Scheduler builds multi-day plans. It holds no state besides its clock and
// is safe for concurrent use.
type Scheduler struct {
	now func() time.Time
}

func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// NewWithClock returns a scheduler whose default start date comes from now
func NewWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// PlanOptions tunes a single planning run
type PlanOptions struct {
	// StartDate is truncated to midnight in its own location.
	// The zero value means today at midnight UTC.
	StartDate time.Time
	// Days is the horizon length; zero or negative means constants.DefaultHorizonDays
	Days int
	// SimulateGoal is appended to the goal set under constants.SimulatedGoalID
	SimulateGoal *models.GoalDraft
}

type goalProgress struct {
	allocated time.Duration
	target    float64
	owed      time.Duration
}

// GeneratePlan allocates goal time around fixed events over the horizon.
// Goals are ordered once by priority weight (stable) and that order is used
// for every day.
func (s *Scheduler) GeneratePlan(goals []models.Goal, events []models.FixedEvent, constraints models.CapacityConstraints, opts PlanOptions) models.PlanResponse {
	start := s.startOfPlan(opts.StartDate)
	days := opts.Days
	if days <= 0 {
		days = constants.DefaultHorizonDays
	}

	working := make([]models.Goal, len(goals), len(goals)+1)
	copy(working, goals)
	if opts.SimulateGoal != nil {
		working = append(working, opts.SimulateGoal.ToGoal(constants.SimulatedGoalID, s.now().UTC()))
	}
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].PriorityWeight > working[j].PriorityWeight
	})

	progress := make(map[string]*goalProgress, len(working))
	for _, g := range working {
		progress[g.ID] = &goalProgress{
			target: g.WeeklyTargetHours,
			owed:   models.HoursToDuration(g.WeeklyTargetHours),
		}
	}

	deepCap := constraints.DeepWorkCap()
	totalCap := constraints.TotalScheduledCap()

	blocks := make([]models.PlannedBlock, 0)
	capacity := make([]models.DayCapacity, 0, days)

	for d := 0; d < days; d++ {
		dayStart := time.Date(start.Year(), start.Month(), start.Day()+d, 0, 0, 0, 0, start.Location())
		// Next calendar midnight, so 23h and 25h days stay contiguous.
		dayEnd := time.Date(start.Year(), start.Month(), start.Day()+d+1, 0, 0, 0, 0, start.Location())

		var dayEvents []models.FixedEvent
		for _, ev := range events {
			if ev.Overlaps(dayStart, dayEnd) {
				dayEvents = append(dayEvents, ev)
			}
		}
		for _, ev := range dayEvents {
			blocks = append(blocks, models.PlannedBlock{
				GoalID:   ev.ID,
				GoalName: ev.Title,
				Category: constants.CategoryPersonal,
				Start:    maxTime(ev.Start, dayStart),
				End:      minTime(ev.End, dayEnd),
				IsFixed:  true,
			})
		}

		free := ComputeFreeBlocks(dayStart, dayEnd, dayEvents, constraints)
		totalFree := TotalHours(free)
		var deepUsed, dayAllocated time.Duration

		for _, goal := range working {
			p := progress[goal.ID]
			weeklyFraction := p.target / 7.0
			remaining := p.owed - p.allocated
			dailyBudget := min(models.HoursToDuration(weeklyFraction*constants.CatchUpMultiplier), remaining)

			if dailyBudget <= 0 || deepUsed >= deepCap {
				continue
			}
			if dayAllocated >= totalCap {
				break
			}

			request := min(dailyBudget, deepCap-deepUsed, totalCap-dayAllocated)
			alloc := AllocateGoal(goal, free, request)
			blocks = append(blocks, alloc.Blocks...)
			p.allocated += alloc.Allocated
			deepUsed += alloc.Allocated
			dayAllocated += alloc.Allocated
			free = alloc.Free
		}

		capacity = append(capacity, models.DayCapacity{
			Date:           dayStart.Format(constants.DateFormat),
			TotalHours:     models.Round(totalFree, 2),
			AllocatedHours: models.Round(dayAllocated.Hours(), 2),
			SpareHours:     models.Round(TotalHours(free), 2),
		})
	}

	allocated := make(map[string]float64, len(working))
	unmet := make([]models.UnmetGoal, 0)
	for _, goal := range working {
		p := progress[goal.ID]
		hours := p.allocated.Hours()
		allocated[goal.ID] = hours
		target := p.target * (float64(days) / 7.0)
		if hours < target-constants.UnmetToleranceHours {
			unmet = append(unmet, models.UnmetGoal{
				GoalID:         goal.ID,
				GoalName:       goal.Name,
				TargetHours:    models.Round(target, 1),
				AllocatedHours: models.Round(hours, 1),
				DeficitHours:   models.Round(target-hours, 1),
			})
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start.Before(blocks[j].Start)
	})

	logger.Debug("Generated plan",
		"start", start.Format(constants.DateFormat),
		"days", days,
		"goals", len(working),
		"blocks", len(blocks),
		"unmet", len(unmet),
	)

	return models.PlanResponse{
		StartDate:        start.Format(constants.DateFormat),
		Days:             days,
		GeneratedAt:      s.now().UTC(),
		Blocks:           blocks,
		Unmet:            unmet,
		CapacityByDay:    capacity,
		CoachingMessages: GenerateCoaching(working, allocated, unmet, days),
	}
}

func (s *Scheduler) startOfPlan(date time.Time) time.Time {
	if date.IsZero() {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
