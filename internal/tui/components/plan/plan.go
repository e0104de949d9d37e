package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/utils"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	fixedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	unmetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	coachStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))
)

// Option customises a plan view
type Option func(*Model)

// WithLocation renders block times in loc instead of UTC
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

type Model struct {
	viewport viewport.Model
	Plan     *models.PlanResponse
	loc      *time.Location
	width    int
	height   int
}

func New(width, height int, opts ...Option) Model {
	m := Model{
		viewport: viewport.New(width, height),
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan yet. Press 'g' to generate one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPlan(plan models.PlanResponse) {
	m.Plan = &plan
	m.Render()
}

// Render rebuilds the viewport content from the current plan
func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No plan loaded.")
		return
	}

	var b strings.Builder
	currentDay := ""
	for _, blk := range m.Plan.Blocks {
		start := blk.Start.In(m.loc)
		if day := start.Format(constants.DateFormat); day != currentDay {
			if currentDay != "" {
				b.WriteString("\n")
			}
			currentDay = day
			b.WriteString(dayStyle.Render(start.Format("Mon Jan 2")) + "\n")
		}

		span := fmt.Sprintf("%s - %s", start.Format(constants.TimeFormat), blk.End.In(m.loc).Format(constants.TimeFormat))
		name := goalStyle.Render(blk.GoalName)
		if blk.IsFixed {
			name = fixedStyle.Render(blk.GoalName + " (fixed)")
		}
		fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(span), name)
	}
	if len(m.Plan.Blocks) == 0 {
		b.WriteString("Nothing scheduled.\n")
	}

	for _, u := range m.Plan.Unmet {
		b.WriteString(unmetStyle.Render(fmt.Sprintf("\n%s short by %s", u.GoalName, utils.FormatHours(u.DeficitHours))))
	}
	if len(m.Plan.Unmet) > 0 {
		b.WriteString("\n")
	}
	for _, msg := range m.Plan.CoachingMessages {
		b.WriteString("\n" + coachStyle.Render(msg))
	}

	m.viewport.SetContent(b.String())
}
