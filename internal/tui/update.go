package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/tui/components/goallist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		bodyHeight := max(msg.Height-v-3, 0)
		m.planModel.SetSize(msg.Width-h, bodyHeight)
		m.goalList.SetSize(msg.Width-h, bodyHeight)
		m.capacityModel.SetSize(msg.Width-h, bodyHeight)
		return m, nil

	case planLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("⚠ Failed to load plan: %v", msg.err)
			return m, nil
		}
		m.status = ""
		m.planModel.SetPlan(msg.plan)
		m.capacityModel.SetPlan(msg.plan)
		return m, nil

	case goalsLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("⚠ Failed to load goals: %v", msg.err)
			return m, nil
		}
		m.goalList.SetGoals(msg.goals)
		return m, nil

	case goallist.DeleteGoalMsg:
		m.confirmDelete = msg.ID
		return m, nil

	case goallist.RestoreGoalMsg:
		if err := m.goals.RestoreGoal(m.userID, msg.ID); err != nil {
			m.status = fmt.Sprintf("⚠ Failed to restore goal: %v", err)
			return m, nil
		}
		return m, tea.Batch(m.loadGoals(), m.loadPlan(true))

	case tea.KeyMsg:
		if m.confirmDelete != "" {
			return m.updateConfirmDelete(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = tabs[(m.tabIndex()+1)%len(tabs)]
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = tabs[(m.tabIndex()-1+len(tabs))%len(tabs)]
			return m, nil
		case m.state == constants.StatePlan && key.Matches(msg, m.keys.Generate):
			m.status = "Generating plan..."
			return m, m.loadPlan(true)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StatePlan:
		m.planModel, cmd = m.planModel.Update(msg)
	case constants.StateGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case constants.StateCapacity:
		m.capacityModel, cmd = m.capacityModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmDelete
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = ""
		if err := m.goals.DeleteGoal(m.userID, id); err != nil {
			m.status = fmt.Sprintf("⚠ Failed to delete goal: %v", err)
			return m, nil
		}
		return m, tea.Batch(m.loadGoals(), m.loadPlan(true))
	case "n", "N", "esc", "q":
		m.confirmDelete = ""
	}
	return m, nil
}
