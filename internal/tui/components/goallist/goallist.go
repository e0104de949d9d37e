package goallist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/utils"
)

type DeleteGoalMsg struct {
	ID string
}

type RestoreGoalMsg struct {
	ID string
}

type Item struct {
	Goal models.Goal
}

func (i Item) Title() string {
	if i.Goal.DeletedAt != nil {
		return i.Goal.Name + " (deleted)"
	}
	return i.Goal.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s/week | weight %d | %s",
		utils.FormatHours(i.Goal.WeeklyTargetHours), i.Goal.PriorityWeight, i.Goal.Category)
	if len(i.Goal.PreferredWindows) > 0 {
		windows := make([]string, len(i.Goal.PreferredWindows))
		for j, w := range i.Goal.PreferredWindows {
			windows[j] = string(w)
		}
		desc += " | " + strings.Join(windows, ", ")
	}
	if i.Goal.DeletedAt != nil {
		desc += " | can restore with 'r'"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Goal.Name }

type KeyMap struct {
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(goals []models.Goal, width, height int) Model {
	l := list.New(toItems(goals), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

func toItems(goals []models.Goal) []list.Item {
	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = Item{Goal: g}
	}
	return items
}

func (m *Model) SetGoals(goals []models.Goal) {
	m.list.SetItems(toItems(goals))
}

// Len returns the number of goals shown
func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		item, selected := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Delete):
			if selected && item.Goal.DeletedAt == nil {
				return m, func() tea.Msg { return DeleteGoalMsg{ID: item.Goal.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Restore):
			if selected && item.Goal.DeletedAt != nil {
				return m, func() tea.Msg { return RestoreGoalMsg{ID: item.Goal.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No goals yet.\n  Add one with 'chronoforge goal add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
