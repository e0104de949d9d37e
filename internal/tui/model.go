package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/planner"
	"github.com/julianstephens/chronoforge/internal/tui/components/capacity"
	"github.com/julianstephens/chronoforge/internal/tui/components/goallist"
	"github.com/julianstephens/chronoforge/internal/tui/components/plan"
)

// Planner produces plans for the viewer
type Planner interface {
	Current(ctx context.Context, userID string) (models.PlanResponse, error)
	Generate(ctx context.Context, userID string, req planner.Request) (models.PlanResponse, error)
}

// GoalStore is the subset of storage the goals tab edits
type GoalStore interface {
	ListGoalsIncludingDeleted(userID string) ([]models.Goal, error)
	DeleteGoal(userID, id string) error
	RestoreGoal(userID, id string) error
}

var tabs = []constants.SessionState{
	constants.StatePlan,
	constants.StateGoals,
	constants.StateCapacity,
}

var tabTitles = map[constants.SessionState]string{
	constants.StatePlan:     "Plan",
	constants.StateGoals:    "Goals",
	constants.StateCapacity: "Capacity",
}

type planLoadedMsg struct {
	plan models.PlanResponse
	err  error
}

type goalsLoadedMsg struct {
	goals []models.Goal
	err   error
}

type Model struct {
	planner       Planner
	goals         GoalStore
	userID        string
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	planModel     plan.Model
	goalList      goallist.Model
	capacityModel capacity.Model
	status        string
	confirmDelete string
	quitting      bool
	width         int
	height        int
}

func NewModel(p Planner, goals GoalStore, userID string, opts ...plan.Option) Model {
	return Model{
		planner:       p,
		goals:         goals,
		userID:        userID,
		state:         constants.StatePlan,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		planModel:     plan.New(0, 0, opts...),
		goalList:      goallist.New(nil, 0, 0),
		capacityModel: capacity.New(0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StatePlan:
		keys = append(keys, m.keys.Generate)
	case constants.StateGoals:
		keys = append(keys, m.keys.Delete, m.keys.Restore)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StatePlan:
		actions = []key.Binding{m.keys.Generate}
	case constants.StateGoals:
		actions = []key.Binding{m.keys.Delete, m.keys.Restore}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPlan(false), m.loadGoals())
}

func (m Model) loadPlan(regenerate bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if regenerate {
			p, err := m.planner.Generate(ctx, m.userID, planner.Request{})
			return planLoadedMsg{plan: p, err: err}
		}
		p, err := m.planner.Current(ctx, m.userID)
		return planLoadedMsg{plan: p, err: err}
	}
}

func (m Model) loadGoals() tea.Cmd {
	return func() tea.Msg {
		goals, err := m.goals.ListGoalsIncludingDeleted(m.userID)
		return goalsLoadedMsg{goals: goals, err: err}
	}
}

func (m Model) tabIndex() int {
	for i, s := range tabs {
		if s == m.state {
			return i
		}
	}
	return 0
}
