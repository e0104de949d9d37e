package plans

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/planner"
	"github.com/julianstephens/chronoforge/internal/report"
)

// SimulateFlags describe a hypothetical goal added to a single run
type SimulateFlags struct {
	SimulateName     string   `name:"simulate-name" help:"Name of a hypothetical goal to include in this run only."`
	SimulateCategory string   `name:"simulate-category" help:"Category of the hypothetical goal." default:"study"`
	SimulateWeight   int      `name:"simulate-weight" help:"Priority weight of the hypothetical goal." default:"5"`
	SimulateHours    float64  `name:"simulate-hours" help:"Weekly target hours of the hypothetical goal." default:"5"`
	SimulateWindow   []string `name:"simulate-window" help:"Preferred windows of the hypothetical goal."`
}

// Draft returns the simulated goal, or nil when no name was given
func (f SimulateFlags) Draft() (*models.GoalDraft, error) {
	if strings.TrimSpace(f.SimulateName) == "" {
		return nil, nil
	}
	windows, err := cli.ParseWindows(f.SimulateWindow)
	if err != nil {
		return nil, err
	}
	return &models.GoalDraft{
		Name:              strings.TrimSpace(f.SimulateName),
		Category:          constants.GoalCategory(strings.ToLower(f.SimulateCategory)),
		PriorityWeight:    f.SimulateWeight,
		WeeklyTargetHours: f.SimulateHours,
		PreferredWindows:  windows,
	}, nil
}

type GenerateCmd struct {
	Start string `help:"First day of the plan (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	Days  int    `short:"d" help:"Number of days to plan." default:"14"`
	JSON  bool   `help:"Print the plan as JSON."`
	SimulateFlags
}

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	start, err := ctx.ParseDate(c.Start)
	if err != nil {
		return err
	}
	sim, err := c.Draft()
	if err != nil {
		return err
	}

	plan, err := ctx.Planner().Generate(context.Background(), ctx.UserID, planner.Request{
		StartDate: start,
		Days:      c.Days,
		Simulate:  sim,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return report.WriteJSON(ctx.Stdout(), plan)
	}
	if sim != nil {
		ctx.Printf("Simulating %q (not saved)\n\n", sim.Name)
	}
	return report.WritePlan(ctx.Stdout(), plan, ctx.Loc())
}

type ShowCmd struct {
	JSON bool `help:"Print the plan as JSON."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Planner().Current(context.Background(), ctx.UserID)
	if err != nil {
		return err
	}
	if c.JSON {
		return report.WriteJSON(ctx.Stdout(), plan)
	}
	ctx.Printf("Generated %s\n", plan.GeneratedAt.In(ctx.Loc()).Format(constants.DateTimeFormat))
	return report.WritePlan(ctx.Stdout(), plan, ctx.Loc())
}

type CapacityCmd struct {
	JSON bool `help:"Print per-day capacity as JSON."`
}

func (c *CapacityCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Planner().Current(context.Background(), ctx.UserID)
	if err != nil {
		return err
	}
	if c.JSON {
		return report.WriteJSON(ctx.Stdout(), plan.CapacityByDay)
	}
	ctx.Printf("Capacity for %d days starting %s\n", plan.Days, plan.StartDate)
	ctx.Println(report.CapacityTable(plan))
	return nil
}

type TradeoffCmd struct {
	Name     string   `required:"" help:"Name of the goal you are considering."`
	Category string   `help:"Category of the new goal." default:"study"`
	Weight   int      `help:"Priority weight of the new goal." default:"5"`
	Hours    float64  `help:"Weekly target hours of the new goal." default:"5"`
	Window   []string `help:"Preferred windows of the new goal."`
	Diff     bool     `help:"Show a unified diff of hours per goal."`
	JSON     bool     `help:"Print the report as JSON."`
}

func (c *TradeoffCmd) Run(ctx *cli.Context) error {
	windows, err := cli.ParseWindows(c.Window)
	if err != nil {
		return err
	}
	draft := models.GoalDraft{
		Name:              strings.TrimSpace(c.Name),
		Category:          constants.GoalCategory(strings.ToLower(c.Category)),
		PriorityWeight:    c.Weight,
		WeeklyTargetHours: c.Hours,
		PreferredWindows:  windows,
	}

	result, err := ctx.Planner().Tradeoff(context.Background(), ctx.UserID, draft)
	if err != nil {
		return err
	}

	if c.JSON {
		return report.WriteJSON(ctx.Stdout(), result)
	}
	if err := report.WriteTradeoff(ctx.Stdout(), result); err != nil {
		return err
	}
	if !c.Diff {
		return nil
	}

	diff, err := report.HoursDiff(result)
	if err != nil {
		return err
	}
	if diff == "" {
		ctx.Println("\nNo change in hours per goal.")
		return nil
	}
	ctx.Println()
	fmt.Fprint(ctx.Stdout(), diff)
	return nil
}
