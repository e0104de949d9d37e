package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/chronoforge/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	if m.confirmDelete != "" {
		content = m.viewConfirmDelete()
	} else {
		switch m.state {
		case constants.StatePlan:
			content = docStyle.Render(m.planModel.View())
		case constants.StateGoals:
			content = docStyle.Render(m.goalList.View())
		case constants.StateCapacity:
			content = docStyle.Render(m.capacityModel.View())
		}
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	rendered := make([]string, 0, len(tabs))
	for _, s := range tabs {
		if s == m.state {
			rendered = append(rendered, activeTabStyle.Render(tabTitles[s]))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this goal?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
