package models

import (
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
)

// CapacityConstraints bound how much goal time a single day may hold
type CapacityConstraints struct {
	DailyMaxDeepWorkHours       float64 `json:"daily_max_deep_work_hours"`
	DailyMaxTotalScheduledHours float64 `json:"daily_max_total_scheduled_hours"`
	SleepStartHour              int     `json:"sleep_start_hour"`
	SleepEndHour                int     `json:"sleep_end_hour"`
}

// DefaultConstraints returns the constraints used when a user has configured none
func DefaultConstraints() CapacityConstraints {
	return CapacityConstraints{
		DailyMaxDeepWorkHours:       constants.DefaultDailyMaxDeepWorkHours,
		DailyMaxTotalScheduledHours: constants.DefaultDailyMaxTotalScheduledHours,
		SleepStartHour:              constants.DefaultSleepStartHour,
		SleepEndHour:                constants.DefaultSleepEndHour,
	}
}

// SleepWraps reports whether the sleep window crosses midnight
func (c CapacityConstraints) SleepWraps() bool {
	return c.SleepStartHour >= c.SleepEndHour
}

// DeepWorkCap returns the daily deep-work ceiling as a duration
func (c CapacityConstraints) DeepWorkCap() time.Duration {
	return HoursToDuration(c.DailyMaxDeepWorkHours)
}

// TotalScheduledCap returns the daily total-scheduled ceiling as a duration
func (c CapacityConstraints) TotalScheduledCap() time.Duration {
	return HoursToDuration(c.DailyMaxTotalScheduledHours)
}
