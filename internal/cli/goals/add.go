package goals

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/utils"
	"github.com/julianstephens/chronoforge/internal/validation"
)

type AddCmd struct {
	Name        string   `arg:"" optional:"" help:"Goal name."`
	Category    string   `short:"c" help:"Category (study|fitness|career|personal|project|social)." default:"study"`
	Weight      int      `short:"w" help:"Priority weight (1-10, higher is scheduled first)." default:"5"`
	Hours       float64  `short:"H" help:"Weekly target in hours." default:"5"`
	Window      []string `help:"Preferred time windows (morning, afternoon, evening)."`
	Deadline    string   `help:"Hard deadline (YYYY-MM-DD). Stored for reference only."`
	Interactive bool     `short:"i" help:"Fill in the goal with an interactive form."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	draft, err := c.draft(ctx)
	if err != nil {
		return err
	}
	if c.Interactive {
		fm := NewFormModel(draft)
		if err := NewForm(fm).Run(); err != nil {
			return fmt.Errorf("goal form cancelled: %w", err)
		}
		if draft, err = fm.Draft(ctx.Loc()); err != nil {
			return err
		}
	}

	goal, err := Create(ctx, draft)
	if err != nil {
		return err
	}

	ctx.Printf("Added goal: %s (%s/week, weight %d)\n", goal.Name, utils.FormatHours(goal.WeeklyTargetHours), goal.PriorityWeight)
	ctx.Printf("ID: %s\n", goal.ID)
	return nil
}

func (c *AddCmd) draft(ctx *cli.Context) (models.GoalDraft, error) {
	if strings.TrimSpace(c.Name) == "" && !c.Interactive {
		return models.GoalDraft{}, fmt.Errorf("goal name is required unless --interactive is set")
	}
	windows, err := cli.ParseWindows(c.Window)
	if err != nil {
		return models.GoalDraft{}, err
	}
	d := models.GoalDraft{
		Name:              strings.TrimSpace(c.Name),
		Category:          constants.GoalCategory(strings.ToLower(c.Category)),
		PriorityWeight:    c.Weight,
		WeeklyTargetHours: c.Hours,
		PreferredWindows:  windows,
	}
	if c.Deadline != "" {
		deadline, err := utils.ParseDateInLocation(c.Deadline, ctx.Loc())
		if err != nil {
			return models.GoalDraft{}, fmt.Errorf("invalid deadline: %w", err)
		}
		d.HardDeadline = &deadline
	}
	return d, nil
}

// Create validates draft and stores it as a new goal for the context user.
// Names must be unique among the user's active goals.
func Create(ctx *cli.Context, draft models.GoalDraft) (models.Goal, error) {
	draft = draft.ApplyDefaults()
	if err := validation.ValidateGoalDraft(draft); err != nil {
		return models.Goal{}, err
	}

	existing, err := ctx.Store.ListGoals(ctx.UserID)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to list goals: %w", err)
	}
	for _, g := range existing {
		if strings.EqualFold(g.Name, draft.Name) {
			return models.Goal{}, fmt.Errorf("a goal named %q already exists (ID: %s)", g.Name, g.ID)
		}
	}

	goal := draft.ToGoal(uuid.New().String(), ctx.Clock().UTC())
	if err := ctx.Store.AddGoal(ctx.UserID, goal); err != nil {
		return models.Goal{}, fmt.Errorf("failed to add goal: %w", err)
	}
	ctx.InvalidatePlan()
	logger.Info("Goal added", "user", ctx.UserID, "id", goal.ID, "name", goal.Name)
	return goal, nil
}
