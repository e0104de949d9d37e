package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateGoalName   ConflictType = "duplicate_goal_name"
	ConflictInvalidGoal         ConflictType = "invalid_goal"
	ConflictInvalidEvent        ConflictType = "invalid_event"
	ConflictOverlappingEvents   ConflictType = "overlapping_events"
	ConflictOverlappingBlocks   ConflictType = "overlapping_blocks"
	ConflictExceedsDeepWork     ConflictType = "exceeds_deep_work"
	ConflictExceedsTotal        ConflictType = "exceeds_total_scheduled"
	ConflictMissingGoalID       ConflictType = "missing_goal_id"
	ConflictOverAllocatedWeekly ConflictType = "over_allocated_weekly"
)

// Conflict represents a detected conflict in goals, events or plans
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Goal/event names involved
	TimeRange   string   // Human-readable time range (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// ValidateGoalDraft rejects drafts the scheduler cannot plan sensibly
func ValidateGoalDraft(d models.GoalDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	if d.PriorityWeight < constants.MinPriorityWeight || d.PriorityWeight > constants.MaxPriorityWeight {
		return fmt.Errorf("priority weight must be between %d and %d, got %d",
			constants.MinPriorityWeight, constants.MaxPriorityWeight, d.PriorityWeight)
	}
	if d.WeeklyTargetHours <= 0 {
		return fmt.Errorf("weekly target hours must be positive, got %.2f", d.WeeklyTargetHours)
	}
	if !models.IsValidCategory(d.Category) {
		return fmt.Errorf("invalid category %q", d.Category)
	}
	for _, w := range d.PreferredWindows {
		if !models.IsValidWindow(w) {
			return fmt.Errorf("invalid time window %q", w)
		}
	}
	return nil
}

// ValidateEvent rejects events whose end does not follow their start
func ValidateEvent(e models.FixedEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("event %q must have a start and an end", e.Title)
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("event %q ends (%s) before it starts (%s)",
			e.Title, e.End.Format(constants.DateTimeFormat), e.Start.Format(constants.DateTimeFormat))
	}
	return nil
}

// ValidateConstraints checks hour ranges and caps
func ValidateConstraints(c models.CapacityConstraints) error {
	if c.SleepStartHour < 0 || c.SleepStartHour > 23 {
		return fmt.Errorf("sleep start hour must be between 0 and 23, got %d", c.SleepStartHour)
	}
	if c.SleepEndHour < 0 || c.SleepEndHour > 23 {
		return fmt.Errorf("sleep end hour must be between 0 and 23, got %d", c.SleepEndHour)
	}
	if c.DailyMaxDeepWorkHours < 0 || c.DailyMaxDeepWorkHours > 24 {
		return fmt.Errorf("daily max deep work hours must be between 0 and 24, got %.2f", c.DailyMaxDeepWorkHours)
	}
	if c.DailyMaxTotalScheduledHours < 0 || c.DailyMaxTotalScheduledHours > 24 {
		return fmt.Errorf("daily max total scheduled hours must be between 0 and 24, got %.2f", c.DailyMaxTotalScheduledHours)
	}
	return nil
}

// Validator validates goals, events and plans for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateGoals checks active goals for duplicate names and invalid values
func (v *Validator) ValidateGoals(goals []models.Goal) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	var names []string
	for _, goal := range goals {
		if goal.DeletedAt != nil {
			continue
		}
		if err := ValidateGoalDraft(goal.Draft()); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidGoal,
				Description: fmt.Sprintf("Goal \"%s\": %v", goal.Name, err),
				Items:       []string{goal.Name},
			})
		}
		if goal.Name == "" {
			continue
		}
		if _, seen := nameCount[goal.Name]; !seen {
			names = append(names, goal.Name)
		}
		nameCount[goal.Name] = append(nameCount[goal.Name], goal.ID)
	}

	for _, name := range names {
		if ids := nameCount[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateGoalName,
				Description: fmt.Sprintf("Duplicate goal name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
			})
		}
	}

	return result
}

// ValidateEvents checks events for malformed ranges and overlaps
func (v *Validator) ValidateEvents(events []models.FixedEvent) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var valid []models.FixedEvent
	for _, e := range events {
		if err := ValidateEvent(e); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidEvent,
				Description: err.Error(),
				Items:       []string{e.Title},
			})
			continue
		}
		valid = append(valid, e)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	// O(n²) over sorted events; the inner loop stops at the first non-overlap
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			if !valid[j].Start.Before(valid[i].End) {
				break
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingEvents,
				Description: fmt.Sprintf("Events overlap: \"%s\" (%s) and \"%s\" (%s)",
					valid[i].Title, formatRange(valid[i].Start, valid[i].End),
					valid[j].Title, formatRange(valid[j].Start, valid[j].End)),
				Date:      valid[i].Start.Format(constants.DateFormat),
				Items:     []string{valid[i].Title, valid[j].Title},
				TimeRange: formatRange(valid[i].Start, valid[i].End),
			})
		}
	}

	return result
}

// ValidatePlan checks a generated plan against the goals and constraints it was built from.
// Goal blocks must not overlap each other or fixed blocks, must reference a known goal,
// and must fit the daily caps.
func (v *Validator) ValidatePlan(plan models.PlanResponse, goals []models.Goal, constraints models.CapacityConstraints) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]models.Goal, len(goals))
	for _, g := range goals {
		known[g.ID] = g
	}

	byDay := make(map[string][]models.PlannedBlock)
	var days []string
	for _, b := range plan.Blocks {
		day := b.Start.Format(constants.DateFormat)
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], b)

		if !b.IsFixed && b.GoalID != constants.SimulatedGoalID {
			if _, ok := known[b.GoalID]; !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictMissingGoalID,
					Description: fmt.Sprintf("%s: Block references missing goal ID: %s", day, b.GoalID),
					Date:        day,
					Items:       []string{b.GoalName},
				})
			}
		}
	}
	sort.Strings(days)

	deepCap := constraints.DeepWorkCap()
	totalCap := constraints.TotalScheduledCap()
	perGoal := make(map[string]time.Duration)

	for _, day := range days {
		blocks := byDay[day]
		var allocated time.Duration

		for i := 0; i < len(blocks); i++ {
			if blocks[i].IsFixed {
				continue
			}
			allocated += blocks[i].Duration()
			perGoal[blocks[i].GoalID] += blocks[i].Duration()

			for j := 0; j < len(blocks); j++ {
				if i == j || (!blocks[j].IsFixed && j < i) {
					continue
				}
				if overlaps(blocks[i], blocks[j]) {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingBlocks,
						Description: fmt.Sprintf("%s: %s \"%s\" overlaps \"%s\"",
							day, formatRange(blocks[i].Start, blocks[i].End), blocks[i].GoalName, blocks[j].GoalName),
						Date:      day,
						Items:     []string{blocks[i].GoalName, blocks[j].GoalName},
						TimeRange: formatRange(blocks[i].Start, blocks[i].End),
					})
				}
			}
		}

		if allocated > deepCap {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictExceedsDeepWork,
				Description: fmt.Sprintf("%s: %.1fh allocated exceeds %.1fh deep work cap",
					day, allocated.Hours(), deepCap.Hours()),
				Date: day,
			})
		}
		if allocated > totalCap {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictExceedsTotal,
				Description: fmt.Sprintf("%s: %.1fh allocated exceeds %.1fh total scheduled cap",
					day, allocated.Hours(), totalCap.Hours()),
				Date: day,
			})
		}
	}

	for _, g := range goals {
		if got := perGoal[g.ID]; got > models.HoursToDuration(g.WeeklyTargetHours) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverAllocatedWeekly,
				Description: fmt.Sprintf("Goal \"%s\": %.1fh allocated exceeds %.1fh weekly target",
					g.Name, got.Hours(), g.WeeklyTargetHours),
				Items: []string{g.Name},
			})
		}
	}

	return result
}

func overlaps(a, b models.PlannedBlock) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func formatRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format(constants.TimeFormat), end.Format(constants.TimeFormat))
}
