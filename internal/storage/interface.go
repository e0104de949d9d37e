package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/chronoforge/internal/models"
)

var (
	// ErrNotFound is returned when a goal, event or cached plan does not exist for the user
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when storage has never been initialized
	ErrNotInitialized = errors.New("storage not initialized, run 'chronoforge init' first")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists goals, fixed events, capacity constraints and the
// last generated plan. Every record is scoped to a user ID.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Constraints; defaults are returned when the user has none stored
	GetConstraints(userID string) (models.CapacityConstraints, error)
	SaveConstraints(userID string, c models.CapacityConstraints) error

	// Goals
	AddGoal(userID string, goal models.Goal) error
	GetGoal(userID, id string) (models.Goal, error)
	ListGoals(userID string) ([]models.Goal, error)
	ListGoalsIncludingDeleted(userID string) ([]models.Goal, error)
	DeleteGoal(userID, id string) error
	RestoreGoal(userID, id string) error

	// Fixed events; nil bounds are open. An event is returned when it
	// overlaps [from, to).
	AddEvent(userID string, event models.FixedEvent) error
	ListEvents(userID string, from, to *time.Time) ([]models.FixedEvent, error)
	DeleteEvent(userID, id string) error

	// Plan cache
	SavePlan(userID string, plan models.PlanResponse) error
	GetPlan(userID string) (models.PlanResponse, error)
	ClearPlan(userID string) error

	// Utils
	GetConfigPath() string
}
