package constants

const (
	// Constraint keys as stored in the settings tables
	SettingDailyMaxDeepWorkHours       = "daily_max_deep_work_hours"
	SettingDailyMaxTotalScheduledHours = "daily_max_total_scheduled_hours"
	SettingSleepStartHour              = "sleep_start_hour"
	SettingSleepEndHour                = "sleep_end_hour"

	// Default constraint values
	DefaultDailyMaxDeepWorkHours       = 4.0
	DefaultDailyMaxTotalScheduledHours = 12.0
	DefaultSleepStartHour              = 0
	DefaultSleepEndHour                = 7

	// Default goal values
	DefaultGoalCategory    = CategoryStudy
	DefaultPriorityWeight  = 5
	DefaultWeeklyTarget    = 5.0
	MinPriorityWeight      = 1
	MaxPriorityWeight      = 10
	SeedGoalName           = "Study / Homework"
	SeedGoalPriorityWeight = 7
	SeedGoalWeeklyTarget   = 10.0
)
