// Package planner connects storage and event sources to the scheduler.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/chronoforge/internal/calendar"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/scheduler"
	"github.com/julianstephens/chronoforge/internal/storage"
	"github.com/julianstephens/chronoforge/internal/utils"
	"github.com/julianstephens/chronoforge/internal/validation"
)

// MaxHorizonDays bounds a single planning request
const MaxHorizonDays = 366

// GoalSource lists a user's active goals
type GoalSource interface {
	ListGoals(userID string) ([]models.Goal, error)
}

// ConstraintSource returns a user's capacity constraints, defaults when unset
type ConstraintSource interface {
	GetConstraints(userID string) (models.CapacityConstraints, error)
}

// PlanCache keeps the last plan generated for a user
type PlanCache interface {
	GetPlan(userID string) (models.PlanResponse, error)
	SavePlan(userID string, plan models.PlanResponse) error
}

// Config wires a Service. Location sets the default start day; nil means UTC.
// Now defaults to time.Now.
type Config struct {
	Goals       GoalSource
	Constraints ConstraintSource
	Cache       PlanCache
	Events      calendar.Source
	Location    *time.Location
	Now         func() time.Time
}

// Service generates, caches and compares plans for a user
type Service struct {
	goals       GoalSource
	constraints ConstraintSource
	cache       PlanCache
	events      calendar.Source
	loc         *time.Location
	now         func() time.Time
	scheduler   *scheduler.Scheduler
	validator   *validation.Validator
}

// New builds a Service from cfg
func New(cfg Config) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		goals:       cfg.Goals,
		constraints: cfg.Constraints,
		cache:       cfg.Cache,
		events:      cfg.Events,
		loc:         loc,
		now:         now,
		scheduler:   scheduler.NewWithClock(now),
		validator:   validation.New(),
	}
}

// NewFromStore wires a Service entirely from one storage provider
func NewFromStore(store storage.Provider, events calendar.Source, loc *time.Location) *Service {
	if events == nil {
		events = &calendar.StoreSource{Store: store}
	}
	return New(Config{
		Goals:       store,
		Constraints: store,
		Cache:       store,
		Events:      events,
		Location:    loc,
	})
}

// Request describes one planning run. A zero StartDate means today in the
// service's location; Days <= 0 means constants.DefaultHorizonDays.
type Request struct {
	StartDate time.Time
	Days      int
	Simulate  *models.GoalDraft
}

// Generate builds a plan and caches it unless it includes a simulated goal
func (s *Service) Generate(ctx context.Context, userID string, req Request) (models.PlanResponse, error) {
	if req.Days > MaxHorizonDays {
		return models.PlanResponse{}, fmt.Errorf("horizon of %d days exceeds the maximum of %d", req.Days, MaxHorizonDays)
	}
	if req.Simulate != nil {
		draft := req.Simulate.ApplyDefaults()
		if err := validation.ValidateGoalDraft(draft); err != nil {
			return models.PlanResponse{}, fmt.Errorf("invalid simulated goal: %w", err)
		}
		req.Simulate = &draft
	}

	goals, constraints, err := s.inputs(userID)
	if err != nil {
		return models.PlanResponse{}, err
	}

	start := req.StartDate
	if start.IsZero() {
		start = s.now().In(s.loc)
	}
	start = utils.StartOfDay(start)
	days := req.Days
	if days <= 0 {
		days = constants.DefaultHorizonDays
	}
	from, to := utils.DayRange(start, days)
	events := calendar.FetchOrEmpty(ctx, s.events, userID, from, to)

	plan := s.scheduler.GeneratePlan(goals, events, constraints, scheduler.PlanOptions{
		StartDate:    start,
		Days:         days,
		SimulateGoal: req.Simulate,
	})

	if result := s.validator.ValidatePlan(plan, goals, constraints); result.HasConflicts() {
		logger.Warn("Generated plan has conflicts", "user", userID, "conflicts", len(result.Conflicts))
		for _, c := range result.Conflicts {
			logger.Debug("Plan conflict", "type", c.Type, "description", c.Description)
		}
	}

	if req.Simulate == nil && s.cache != nil {
		if err := s.cache.SavePlan(userID, plan); err != nil {
			logger.Warn("Failed to cache plan", "user", userID, "error", err)
		}
	}

	logger.Info("Plan generated", "user", userID, "start", plan.StartDate, "days", plan.Days,
		"goals", len(goals), "events", len(events), "unmet", len(plan.Unmet))
	return plan, nil
}

// Current returns the cached plan, generating a default one when none exists
func (s *Service) Current(ctx context.Context, userID string) (models.PlanResponse, error) {
	if s.cache != nil {
		plan, err := s.cache.GetPlan(userID)
		if err == nil {
			return plan, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read cached plan, regenerating", "user", userID, "error", err)
		}
	}
	return s.Generate(ctx, userID, Request{})
}

// Tradeoff reports what adding draft would cost the user's existing goals
func (s *Service) Tradeoff(ctx context.Context, userID string, draft models.GoalDraft) (models.TradeoffReport, error) {
	draft = draft.ApplyDefaults()
	if err := validation.ValidateGoalDraft(draft); err != nil {
		return models.TradeoffReport{}, fmt.Errorf("invalid goal: %w", err)
	}

	goals, constraints, err := s.inputs(userID)
	if err != nil {
		return models.TradeoffReport{}, err
	}

	// Same local day boundaries as Generate so the report matches the plan.
	today := utils.StartOfDay(s.now().In(s.loc))
	from, to := utils.DayRange(today, constants.DefaultHorizonDays)
	events := calendar.FetchOrEmpty(ctx, s.events, userID, from, to)

	report := s.scheduler.ComputeTradeoffsFrom(today, goals, draft, events, constraints)
	logger.Info("Trade-off computed", "user", userID, "goal", draft.Name,
		"hours", report.NewGoalHours, "affected", len(report.Affected), "feasible", report.Feasible)
	return report, nil
}

func (s *Service) inputs(userID string) ([]models.Goal, models.CapacityConstraints, error) {
	goals, err := s.goals.ListGoals(userID)
	if err != nil {
		return nil, models.CapacityConstraints{}, fmt.Errorf("failed to load goals: %w", err)
	}
	constraints, err := s.constraints.GetConstraints(userID)
	if err != nil {
		return nil, models.CapacityConstraints{}, fmt.Errorf("failed to load constraints: %w", err)
	}
	return goals, constraints, nil
}
