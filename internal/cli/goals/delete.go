package goals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Goal ID or unique ID prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	goal, err := resolve(ctx, c.ID, false)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteGoal(ctx.UserID, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	ctx.InvalidatePlan()
	logger.Info("Goal deleted", "user", ctx.UserID, "id", goal.ID)
	ctx.Printf("Deleted goal: %s\n", goal.Name)
	ctx.Printf("Restore it with 'chronoforge goal restore %s'\n", shortID(goal.ID))
	return nil
}

type RestoreCmd struct {
	ID string `arg:"" help:"Goal ID or unique ID prefix."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	goal, err := resolve(ctx, c.ID, true)
	if err != nil {
		return err
	}
	if goal.DeletedAt == nil {
		return fmt.Errorf("goal %q is not deleted", goal.Name)
	}
	if err := ctx.Store.RestoreGoal(ctx.UserID, goal.ID); err != nil {
		return fmt.Errorf("failed to restore goal: %w", err)
	}
	ctx.InvalidatePlan()
	logger.Info("Goal restored", "user", ctx.UserID, "id", goal.ID)
	ctx.Printf("Restored goal: %s\n", goal.Name)
	return nil
}

// resolve finds a goal by full ID or unique ID prefix
func resolve(ctx *cli.Context, ref string, includeDeleted bool) (models.Goal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Goal{}, fmt.Errorf("goal ID is required")
	}
	if g, err := ctx.Store.GetGoal(ctx.UserID, ref); err == nil {
		return g, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Goal{}, err
	}

	list := ctx.Store.ListGoals
	if includeDeleted {
		list = ctx.Store.ListGoalsIncludingDeleted
	}
	goals, err := list(ctx.UserID)
	if err != nil {
		return models.Goal{}, err
	}

	var matches []models.Goal
	for _, g := range goals {
		if strings.HasPrefix(g.ID, ref) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return models.Goal{}, fmt.Errorf("goal %s: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Goal{}, fmt.Errorf("goal ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
