package constraints

import (
	"fmt"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/utils"
	"github.com/julianstephens/chronoforge/internal/validation"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Store.GetConstraints(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get constraints: %w", err)
	}
	Print(ctx, current)
	return nil
}

// Print writes the constraints in a human-readable block
func Print(ctx *cli.Context, c models.CapacityConstraints) {
	ctx.Println("Capacity constraints:")
	ctx.Printf("  Daily max deep work:       %s\n", utils.FormatHours(c.DailyMaxDeepWorkHours))
	ctx.Printf("  Daily max total scheduled: %s\n", utils.FormatHours(c.DailyMaxTotalScheduledHours))
	ctx.Printf("  Sleep:                     %02d:00 - %02d:00\n", c.SleepStartHour, c.SleepEndHour)
}

type SetCmd struct {
	DeepWork   *float64 `help:"Daily maximum deep-work hours."`
	Total      *float64 `help:"Daily maximum total scheduled hours."`
	SleepStart *int     `help:"Hour sleep starts (0-23)."`
	SleepEnd   *int     `help:"Hour sleep ends (0-23)."`
	Reset      bool     `help:"Restore the default constraints."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Store.GetConstraints(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get constraints: %w", err)
	}

	updated := false
	if c.Reset {
		current = models.DefaultConstraints()
		updated = true
	}
	if c.DeepWork != nil {
		current.DailyMaxDeepWorkHours = *c.DeepWork
		updated = true
	}
	if c.Total != nil {
		current.DailyMaxTotalScheduledHours = *c.Total
		updated = true
	}
	if c.SleepStart != nil {
		current.SleepStartHour = *c.SleepStart
		updated = true
	}
	if c.SleepEnd != nil {
		current.SleepEndHour = *c.SleepEnd
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use 'constraints show' to view them or flags to update them.")
		return nil
	}

	if err := validation.ValidateConstraints(current); err != nil {
		return err
	}
	if err := ctx.Store.SaveConstraints(ctx.UserID, current); err != nil {
		return fmt.Errorf("failed to save constraints: %w", err)
	}
	ctx.InvalidatePlan()
	logger.Info("Constraints updated", "user", ctx.UserID)

	ctx.Println("Constraints updated successfully.")
	Print(ctx, current)
	return nil
}
