package constants

import "time"

// GoalCategory is the closed set of goal categories
type GoalCategory string

// TimeWindow is a coarse part of the day a goal prefers to be scheduled in
type TimeWindow string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "chronoforge"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/chronoforge/chronoforge.db"
	DefaultUser        = "default"
	Version            = "v0.3.0"

	// EnvDBConnection overrides the keyring lookup for the database connection string
	EnvDBConnection = "CHRONOFORGE_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted for event start/end flags
	DateTimeFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "chronoforge-"
	BackupFileSuffix = ".db"

	// Scheduling constants
	MinSlotDuration    = 30 * time.Minute
	DefaultHorizonDays = 14
	SimulatedGoalID    = "__simulated__"

	// Event sources
	EventSourceManual = "manual"
	EventSourceYAML   = "yaml"

	// Goal categories
	CategoryStudy    GoalCategory = "study"
	CategoryFitness  GoalCategory = "fitness"
	CategoryCareer   GoalCategory = "career"
	CategoryPersonal GoalCategory = "personal"
	CategoryProject  GoalCategory = "project"
	CategorySocial   GoalCategory = "social"

	// Time windows
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
	WindowEvening   TimeWindow = "evening"

	// Session States
	StatePlan SessionState = iota
	StateGoals
	StateCapacity
)

// GoalCategories lists every valid category in display order
var GoalCategories = []GoalCategory{
	CategoryStudy,
	CategoryFitness,
	CategoryCareer,
	CategoryPersonal,
	CategoryProject,
	CategorySocial,
}

// TimeWindows lists every valid time window in day order
var TimeWindows = []TimeWindow{
	WindowMorning,
	WindowAfternoon,
	WindowEvening,
}
