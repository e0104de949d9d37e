// Package report renders plans and trade-off analyses as plain text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/utils"
)

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WritePlan lists the plan's blocks grouped by day in loc, followed by unmet
// goals and coaching messages.
func WritePlan(w io.Writer, plan models.PlanResponse, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder

	fmt.Fprintf(&b, "Plan for %d days starting %s\n", plan.Days, plan.StartDate)

	days := groupByDay(plan.Blocks, loc)
	if len(days) == 0 {
		b.WriteString("\n  No blocks scheduled\n")
	}
	for _, day := range days {
		fmt.Fprintf(&b, "\n%s\n", day.label)
		for _, blk := range day.blocks {
			marker := " "
			if blk.IsFixed {
				marker = "*"
			}
			fmt.Fprintf(&b, "  %s %s–%s  %s (%s)\n", marker,
				blk.Start.In(loc).Format(constants.TimeFormat),
				blk.End.In(loc).Format(constants.TimeFormat),
				blk.GoalName, utils.FormatHours(blk.Hours()))
		}
	}

	if len(plan.Unmet) > 0 {
		b.WriteString("\nUnmet goals:\n")
		for _, u := range plan.Unmet {
			fmt.Fprintf(&b, "  - %s: %s of %s (short %s)\n", u.GoalName,
				utils.FormatHours(u.AllocatedHours), utils.FormatHours(u.TargetHours),
				utils.FormatHours(u.DeficitHours))
		}
	}

	if len(plan.CoachingMessages) > 0 {
		b.WriteString("\nCoaching:\n")
		for _, msg := range plan.CoachingMessages {
			fmt.Fprintf(&b, "  %s\n", msg)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type dayBlocks struct {
	label  string
	blocks []models.PlannedBlock
}

func groupByDay(blocks []models.PlannedBlock, loc *time.Location) []dayBlocks {
	var days []dayBlocks
	index := make(map[string]int)
	for _, blk := range blocks {
		key := blk.Start.In(loc).Format(constants.DateFormat)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, dayBlocks{
				label: blk.Start.In(loc).Format("Monday, " + constants.DateFormat),
			})
		}
		days[i].blocks = append(days[i].blocks, blk)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].blocks[0].Start.Before(days[j].blocks[0].Start)
	})
	return days
}

// CapacityTable renders the plan's per-day capacity as a bordered table
func CapacityTable(plan models.PlanResponse) string {
	rows := make([][]string, 0, len(plan.CapacityByDay)+1)
	var total, allocated, spare float64
	for _, c := range plan.CapacityByDay {
		rows = append(rows, []string{
			c.Date,
			utils.FormatHours(c.TotalHours),
			utils.FormatHours(c.AllocatedHours),
			utils.FormatHours(c.SpareHours),
		})
		total += c.TotalHours
		allocated += c.AllocatedHours
		spare += c.SpareHours
	}
	rows = append(rows, []string{
		"Total",
		utils.FormatHours(total),
		utils.FormatHours(allocated),
		utils.FormatHours(spare),
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Free", "Allocated", "Spare").
		Rows(rows...).
		String()
}

// WriteTradeoff describes what the new goal would receive and who pays for it
func WriteTradeoff(w io.Writer, r models.TradeoffReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Adding %q would receive %s over the next %d days.\n",
		r.NewGoalName, utils.FormatHours(r.NewGoalHours), constants.DefaultHorizonDays)
	if r.Feasible {
		b.WriteString("The goal looks feasible with your current commitments.\n")
	} else {
		b.WriteString("The goal does not look feasible with your current commitments.\n")
	}

	if len(r.Affected) == 0 {
		b.WriteString("\nNo existing goal loses meaningful time.\n")
	} else {
		b.WriteString("\nGoals that lose time:\n")
		for _, e := range r.Affected {
			fmt.Fprintf(&b, "  - %s: -%s\n", e.GoalName, utils.FormatHours(e.HoursLost))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HoursDiff returns a unified diff of per-goal hours before and after the
// new goal. An empty string means nothing changed.
func HoursDiff(r models.TradeoffReport) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        hoursLines(r.HoursBefore),
		B:        hoursLines(r.HoursAfter),
		FromFile: "current",
		ToFile:   "with " + r.NewGoalName,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff goal hours: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return text, nil
}

func hoursLines(hours map[string]float64) []string {
	names := make([]string, 0, len(hours))
	for name := range hours {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s\n", name, utils.FormatHours(hours[name])))
	}
	return lines
}
