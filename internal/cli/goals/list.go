package goals

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/utils"
)

type ListCmd struct {
	All bool `short:"a" help:"Include deleted goals."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	list := ctx.Store.ListGoals
	if c.All {
		list = ctx.Store.ListGoalsIncludingDeleted
	}
	goals, err := list(ctx.UserID)
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		ctx.Println("No goals found. Add one with 'chronoforge goal add'.")
		return nil
	}

	var total float64
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		name := g.Name
		if g.DeletedAt != nil {
			name += " (deleted)"
		} else {
			total += g.WeeklyTargetHours
		}
		deadline := "-"
		if g.HardDeadline != nil {
			deadline = g.HardDeadline.In(ctx.Loc()).Format(constants.DateFormat)
		}
		rows = append(rows, []string{
			shortID(g.ID),
			name,
			string(g.Category),
			utils.FormatHours(g.WeeklyTargetHours),
			strconv.Itoa(g.PriorityWeight),
			cli.FormatWindows(g.PreferredWindows),
			deadline,
		})
	}

	ctx.Println(table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Category", "Weekly", "Weight", "Windows", "Deadline").
		Rows(rows...).
		String())
	ctx.Printf("Total weekly target: %s\n", utils.FormatHours(total))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
