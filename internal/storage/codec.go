package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

// EncodeWindows serialises preferred windows for a TEXT column
func EncodeWindows(windows []constants.TimeWindow) (string, error) {
	if windows == nil {
		windows = []constants.TimeWindow{}
	}
	data, err := json.Marshal(windows)
	if err != nil {
		return "", fmt.Errorf("failed to marshal preferred windows: %w", err)
	}
	return string(data), nil
}

// DecodeWindows parses a TEXT column written by EncodeWindows
func DecodeWindows(raw string) ([]constants.TimeWindow, error) {
	if raw == "" {
		return nil, nil
	}
	var windows []constants.TimeWindow
	if err := json.Unmarshal([]byte(raw), &windows); err != nil {
		return nil, fmt.Errorf("failed to parse preferred windows %q: %w", raw, err)
	}
	return windows, nil
}

// ConstraintsToSettings flattens constraints into settings rows
func ConstraintsToSettings(c models.CapacityConstraints) map[string]string {
	return map[string]string{
		constants.SettingDailyMaxDeepWorkHours:       strconv.FormatFloat(c.DailyMaxDeepWorkHours, 'f', -1, 64),
		constants.SettingDailyMaxTotalScheduledHours: strconv.FormatFloat(c.DailyMaxTotalScheduledHours, 'f', -1, 64),
		constants.SettingSleepStartHour:              strconv.Itoa(c.SleepStartHour),
		constants.SettingSleepEndHour:                strconv.Itoa(c.SleepEndHour),
	}
}

// ConstraintsFromSettings rebuilds constraints from settings rows.
// Missing keys keep their defaults; unknown keys are ignored.
func ConstraintsFromSettings(settings map[string]string) (models.CapacityConstraints, error) {
	c := models.DefaultConstraints()
	for key, value := range settings {
		var err error
		switch key {
		case constants.SettingDailyMaxDeepWorkHours:
			c.DailyMaxDeepWorkHours, err = strconv.ParseFloat(value, 64)
		case constants.SettingDailyMaxTotalScheduledHours:
			c.DailyMaxTotalScheduledHours, err = strconv.ParseFloat(value, 64)
		case constants.SettingSleepStartHour:
			c.SleepStartHour, err = strconv.Atoi(value)
		case constants.SettingSleepEndHour:
			c.SleepEndHour, err = strconv.Atoi(value)
		}
		if err != nil {
			return models.CapacityConstraints{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}
	return c, nil
}

// SettingKeys returns the constraint keys in a stable order
func SettingKeys(settings map[string]string) []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EventInRange applies the ListEvents overlap rule to a single event
func EventInRange(e models.FixedEvent, from, to *time.Time) bool {
	if from != nil && !e.End.After(*from) {
		return false
	}
	if to != nil && !e.Start.Before(*to) {
		return false
	}
	return true
}

// SortEvents orders events by start time, keeping insertion order for ties
func SortEvents(events []models.FixedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}

// SortGoals orders goals by creation time, then name
func SortGoals(goals []models.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		if !goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].CreatedAt.Before(goals[j].CreatedAt)
		}
		return goals[i].Name < goals[j].Name
	})
}

// MarshalPlan encodes a plan for the plan cache
func MarshalPlan(plan models.PlanResponse) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	return string(data), nil
}

// UnmarshalPlan decodes a cached plan
func UnmarshalPlan(raw string) (models.PlanResponse, error) {
	var plan models.PlanResponse
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return models.PlanResponse{}, fmt.Errorf("failed to parse cached plan: %w", err)
	}
	return plan, nil
}
