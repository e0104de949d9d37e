// Package storagetest holds behaviour tests shared by every storage.Provider.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

// Factory returns an initialized provider backed by fresh storage
type Factory func(t *testing.T) storage.Provider

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func goal(id, name string, created time.Time) models.Goal {
	d := models.NewGoalDraft(name)
	d.PreferredWindows = []constants.TimeWindow{constants.WindowMorning, constants.WindowEvening}
	return d.ToGoal(id, created)
}

// Run exercises the Provider contract against the given factory
func Run(t *testing.T, newProvider Factory) {
	t.Run("ConstraintsDefaultThenSaved", func(t *testing.T) {
		p := newProvider(t)

		got, err := p.GetConstraints("alice")
		if err != nil {
			t.Fatalf("GetConstraints() error = %v", err)
		}
		if got != models.DefaultConstraints() {
			t.Errorf("GetConstraints() = %+v, want defaults", got)
		}

		want := models.CapacityConstraints{
			DailyMaxDeepWorkHours:       2.5,
			DailyMaxTotalScheduledHours: 8,
			SleepStartHour:              23,
			SleepEndHour:                6,
		}
		if err := p.SaveConstraints("alice", want); err != nil {
			t.Fatalf("SaveConstraints() error = %v", err)
		}
		got, err = p.GetConstraints("alice")
		if err != nil {
			t.Fatalf("GetConstraints() error = %v", err)
		}
		if got != want {
			t.Errorf("GetConstraints() = %+v, want %+v", got, want)
		}

		other, err := p.GetConstraints("bob")
		if err != nil {
			t.Fatalf("GetConstraints(bob) error = %v", err)
		}
		if other != models.DefaultConstraints() {
			t.Errorf("constraints leaked across users: %+v", other)
		}
	})

	t.Run("GoalRoundTrip", func(t *testing.T) {
		p := newProvider(t)
		deadline := at(20, 12)
		g := goal("g1", "Study", at(1, 8))
		g.HardDeadline = &deadline

		if err := p.AddGoal("alice", g); err != nil {
			t.Fatalf("AddGoal() error = %v", err)
		}

		got, err := p.GetGoal("alice", "g1")
		if err != nil {
			t.Fatalf("GetGoal() error = %v", err)
		}
		if got.Name != "Study" || got.PriorityWeight != g.PriorityWeight || got.WeeklyTargetHours != g.WeeklyTargetHours {
			t.Errorf("GetGoal() = %+v, want %+v", got, g)
		}
		if len(got.PreferredWindows) != 2 || got.PreferredWindows[1] != constants.WindowEvening {
			t.Errorf("PreferredWindows = %v", got.PreferredWindows)
		}
		if got.HardDeadline == nil || !got.HardDeadline.Equal(deadline) {
			t.Errorf("HardDeadline = %v, want %v", got.HardDeadline, deadline)
		}
		if !got.CreatedAt.Equal(g.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, g.CreatedAt)
		}

		if _, err := p.GetGoal("bob", "g1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGoal(bob) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListGoalsOrderedByCreation", func(t *testing.T) {
		p := newProvider(t)
		for _, g := range []models.Goal{
			goal("g2", "Gym", at(2, 8)),
			goal("g1", "Study", at(1, 8)),
			goal("g3", "Reading", at(3, 8)),
		} {
			if err := p.AddGoal("alice", g); err != nil {
				t.Fatalf("AddGoal() error = %v", err)
			}
		}

		goals, err := p.ListGoals("alice")
		if err != nil {
			t.Fatalf("ListGoals() error = %v", err)
		}
		if len(goals) != 3 {
			t.Fatalf("ListGoals() returned %d goals, want 3", len(goals))
		}
		for i, want := range []string{"Study", "Gym", "Reading"} {
			if goals[i].Name != want {
				t.Errorf("goals[%d] = %q, want %q", i, goals[i].Name, want)
			}
		}

		empty, err := p.ListGoals("nobody")
		if err != nil {
			t.Fatalf("ListGoals(nobody) error = %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("ListGoals(nobody) = %v, want empty non-nil slice", empty)
		}
	})

	t.Run("SoftDeleteAndRestore", func(t *testing.T) {
		p := newProvider(t)
		if err := p.AddGoal("alice", goal("g1", "Study", at(1, 8))); err != nil {
			t.Fatalf("AddGoal() error = %v", err)
		}

		if err := p.DeleteGoal("alice", "g1"); err != nil {
			t.Fatalf("DeleteGoal() error = %v", err)
		}
		if _, err := p.GetGoal("alice", "g1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGoal() after delete error = %v, want ErrNotFound", err)
		}
		active, _ := p.ListGoals("alice")
		if len(active) != 0 {
			t.Errorf("ListGoals() after delete = %v, want empty", active)
		}
		all, err := p.ListGoalsIncludingDeleted("alice")
		if err != nil {
			t.Fatalf("ListGoalsIncludingDeleted() error = %v", err)
		}
		if len(all) != 1 || all[0].DeletedAt == nil {
			t.Errorf("ListGoalsIncludingDeleted() = %+v, want one deleted goal", all)
		}

		if err := p.DeleteGoal("alice", "g1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteGoal() error = %v, want ErrNotFound", err)
		}

		if err := p.RestoreGoal("alice", "g1"); err != nil {
			t.Fatalf("RestoreGoal() error = %v", err)
		}
		if _, err := p.GetGoal("alice", "g1"); err != nil {
			t.Errorf("GetGoal() after restore error = %v", err)
		}
		if err := p.RestoreGoal("alice", "g1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("RestoreGoal() on active goal error = %v, want ErrNotFound", err)
		}
	})

	t.Run("EventsFilteredByRange", func(t *testing.T) {
		p := newProvider(t)
		events := []models.FixedEvent{
			{ID: "e2", Title: "Lab", Start: at(2, 9), End: at(2, 11), Source: constants.EventSourceManual},
			{ID: "e1", Title: "Lecture", Start: at(1, 9), End: at(1, 10), Source: constants.EventSourceManual},
			{ID: "e3", Title: "Trip", Start: at(3, 0), End: at(4, 0), IsAllDay: true, Source: constants.EventSourceYAML},
		}
		for _, e := range events {
			if err := p.AddEvent("alice", e); err != nil {
				t.Fatalf("AddEvent() error = %v", err)
			}
		}

		all, err := p.ListEvents("alice", nil, nil)
		if err != nil {
			t.Fatalf("ListEvents() error = %v", err)
		}
		if len(all) != 3 || all[0].ID != "e1" || all[2].ID != "e3" {
			t.Fatalf("ListEvents() = %+v, want e1,e2,e3 by start", all)
		}
		if !all[2].IsAllDay || all[2].Source != constants.EventSourceYAML {
			t.Errorf("event fields not preserved: %+v", all[2])
		}

		from, to := at(2, 0), at(3, 0)
		ranged, err := p.ListEvents("alice", &from, &to)
		if err != nil {
			t.Fatalf("ListEvents(range) error = %v", err)
		}
		if len(ranged) != 1 || ranged[0].ID != "e2" {
			t.Errorf("ListEvents(range) = %+v, want only e2", ranged)
		}

		if err := p.DeleteEvent("alice", "e2"); err != nil {
			t.Fatalf("DeleteEvent() error = %v", err)
		}
		if err := p.DeleteEvent("alice", "e2"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteEvent() error = %v, want ErrNotFound", err)
		}
		left, _ := p.ListEvents("alice", nil, nil)
		if len(left) != 2 {
			t.Errorf("ListEvents() after delete = %d events, want 2", len(left))
		}
	})

	t.Run("PlanCache", func(t *testing.T) {
		p := newProvider(t)

		if _, err := p.GetPlan("alice"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPlan() on empty cache error = %v, want ErrNotFound", err)
		}

		plan := models.PlanResponse{
			StartDate:   "2024-01-01",
			Days:        7,
			GeneratedAt: at(1, 6),
			Blocks: []models.PlannedBlock{
				{GoalID: "g1", GoalName: "Study", Category: constants.CategoryStudy, Start: at(1, 7), End: at(1, 9)},
			},
			Unmet:            []models.UnmetGoal{},
			CapacityByDay:    []models.DayCapacity{{Date: "2024-01-01", TotalHours: 17, AllocatedHours: 2, SpareHours: 15}},
			CoachingMessages: []string{"All goals on track."},
		}
		if err := p.SavePlan("alice", plan); err != nil {
			t.Fatalf("SavePlan() error = %v", err)
		}

		got, err := p.GetPlan("alice")
		if err != nil {
			t.Fatalf("GetPlan() error = %v", err)
		}
		if got.StartDate != plan.StartDate || got.Days != 7 || len(got.Blocks) != 1 {
			t.Errorf("GetPlan() = %+v", got)
		}
		if !got.Blocks[0].End.Equal(plan.Blocks[0].End) {
			t.Errorf("block end = %v, want %v", got.Blocks[0].End, plan.Blocks[0].End)
		}

		plan.Days = 14
		if err := p.SavePlan("alice", plan); err != nil {
			t.Fatalf("SavePlan() overwrite error = %v", err)
		}
		got, _ = p.GetPlan("alice")
		if got.Days != 14 {
			t.Errorf("GetPlan().Days = %d, want 14 after overwrite", got.Days)
		}

		if err := p.ClearPlan("alice"); err != nil {
			t.Fatalf("ClearPlan() error = %v", err)
		}
		if _, err := p.GetPlan("alice"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPlan() after clear error = %v, want ErrNotFound", err)
		}
	})
}
