package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/planner"
	"github.com/julianstephens/chronoforge/internal/tui/components/goallist"
)

type fakePlanner struct {
	plan      models.PlanResponse
	err       error
	generated int
}

func (f *fakePlanner) Current(ctx context.Context, userID string) (models.PlanResponse, error) {
	return f.plan, f.err
}

func (f *fakePlanner) Generate(ctx context.Context, userID string, req planner.Request) (models.PlanResponse, error) {
	f.generated++
	return f.plan, f.err
}

type fakeGoals struct {
	goals    []models.Goal
	deleted  []string
	restored []string
}

func (f *fakeGoals) ListGoalsIncludingDeleted(userID string) ([]models.Goal, error) {
	return f.goals, nil
}

func (f *fakeGoals) DeleteGoal(userID, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGoals) RestoreGoal(userID, id string) error {
	f.restored = append(f.restored, id)
	return nil
}

func samplePlan() models.PlanResponse {
	start := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	return models.PlanResponse{
		StartDate: "2024-01-01",
		Days:      1,
		Blocks: []models.PlannedBlock{
			{GoalID: "g1", GoalName: "Study", Start: start, End: start.Add(90 * time.Minute)},
		},
		CapacityByDay: []models.DayCapacity{{Date: "2024-01-01", TotalHours: 17, AllocatedHours: 1.5, SpareHours: 15.5}},
	}
}

func newTestModel(t *testing.T) (Model, *fakePlanner, *fakeGoals) {
	t.Helper()
	p := &fakePlanner{plan: samplePlan()}
	g := &fakeGoals{goals: []models.Goal{{ID: "g1", Name: "Study", PriorityWeight: 5, WeeklyTargetHours: 10}}}
	m := NewModel(p, g, "alice")
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return drain(t, m, m.Init()), p, g
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// drain runs cmd and feeds every resulting message back into the model
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	next, follow := m.Update(msg)
	return drain(t, next.(Model), follow)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitLoadsPlanAndGoals(t *testing.T) {
	m, _, _ := newTestModel(t)

	if m.planModel.Plan == nil {
		t.Fatal("plan should be loaded after Init")
	}
	if m.goalList.Len() != 1 {
		t.Errorf("goal list has %d goals, want 1", m.goalList.Len())
	}
	if view := m.View(); !strings.Contains(view, "Study") || !strings.Contains(view, "07:00 - 08:30") {
		t.Errorf("plan view missing block:\n%s", view)
	}
}

func TestTabCycling(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateGoals {
		t.Errorf("after tab state = %v, want goals", m.state)
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateCapacity {
		t.Errorf("after second tab state = %v, want capacity", m.state)
	}
	if !strings.Contains(m.View(), "15.5h") {
		t.Errorf("capacity view missing spare hours:\n%s", m.View())
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StatePlan {
		t.Errorf("tab should wrap to plan, got %v", m.state)
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateCapacity {
		t.Errorf("shift+tab should wrap to capacity, got %v", m.state)
	}
}

func TestGenerateKey(t *testing.T) {
	m, p, _ := newTestModel(t)

	next, cmd := m.Update(keyRunes("g"))
	if cmd == nil {
		t.Fatal("expected a command for regenerate")
	}
	drain(t, next.(Model), cmd)
	if p.generated != 1 {
		t.Errorf("Generate called %d times, want 1", p.generated)
	}
}

func TestDeleteGoalRequiresConfirmation(t *testing.T) {
	m, p, g := newTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})

	next, cmd := m.Update(keyRunes("d"))
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	msg := cmd()
	if del, ok := msg.(goallist.DeleteGoalMsg); !ok || del.ID != "g1" {
		t.Fatalf("got %#v, want DeleteGoalMsg for g1", msg)
	}
	m = step(t, next.(Model), msg)
	if !strings.Contains(m.View(), "Are you sure") {
		t.Error("expected confirmation prompt")
	}

	m = step(t, m, keyRunes("n"))
	if len(g.deleted) != 0 || m.confirmDelete != "" {
		t.Fatal("declining should cancel the delete")
	}

	m = step(t, m, goallist.DeleteGoalMsg{ID: "g1"})
	next, cmd = m.Update(keyRunes("y"))
	drain(t, next.(Model), cmd)
	if len(g.deleted) != 1 || g.deleted[0] != "g1" {
		t.Errorf("deleted = %v, want [g1]", g.deleted)
	}
	if p.generated != 1 {
		t.Errorf("plan should be regenerated after delete, Generate called %d times", p.generated)
	}
}

func TestRestoreGoal(t *testing.T) {
	m, _, g := newTestModel(t)
	drain(t, m, func() tea.Msg { return goallist.RestoreGoalMsg{ID: "g9"} })
	if len(g.restored) != 1 || g.restored[0] != "g9" {
		t.Errorf("restored = %v, want [g9]", g.restored)
	}
}

func TestPlanErrorShowsStatus(t *testing.T) {
	p := &fakePlanner{err: errors.New("database is locked")}
	m := NewModel(p, &fakeGoals{}, "alice")
	m = drain(t, m, m.Init())

	if !strings.Contains(m.View(), "database is locked") {
		t.Errorf("expected error status in view:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
