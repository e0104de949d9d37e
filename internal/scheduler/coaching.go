package scheduler

import (
	"fmt"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

const steadyStateMessage = "All goals on track. Don't get comfortable, maintain the pace."

// GenerateCoaching derives status lines from unmet and overcommitted goals.
// allocated maps goal IDs to hours allocated over the horizon.
func GenerateCoaching(goals []models.Goal, allocated map[string]float64, unmet []models.UnmetGoal, days int) []string {
	messages := make([]string, 0, len(unmet)+1)

	if len(unmet) > 0 {
		var totalDeficit float64
		for _, u := range unmet {
			totalDeficit += u.DeficitHours
		}
		if totalDeficit > constants.InfeasibleDeficitHours {
			messages = append(messages, fmt.Sprintf(
				"Your plan is infeasible. You're short %.0f hours. Remove something or accept failure.",
				totalDeficit,
			))
		}
		for _, u := range unmet {
			messages = append(messages, fmt.Sprintf(
				"You're behind on '%s' by %.1f hours. Fix it today.",
				u.GoalName, u.DeficitHours,
			))
		}
	}

	overcommitted := 0
	for _, g := range goals {
		if allocated[g.ID] > g.WeeklyTargetHours*(float64(days)/7.0) {
			overcommitted++
		}
	}
	if overcommitted == 0 && len(unmet) == 0 {
		messages = append(messages, steadyStateMessage)
	}

	return messages
}
