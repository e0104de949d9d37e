package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing database file before initializing."`
	Source string `help:"Database path or connection string to copy this user's data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized chronoforge storage at: %s\n", describeLocation(ctx.Store.GetConfigPath()))

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", describeLocation(c.Source))
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
		return nil
	}

	return seed(ctx)
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if postgres.IsConnString(dbPath) {
		return errors.New("--force is only supported for file-based storage")
	}
	if c.Source != "" {
		absDB, errDB := filepath.Abs(dbPath)
		absSrc, errSrc := filepath.Abs(c.Source)
		if errDB == nil && errSrc == nil && absDB == absSrc {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// seed stores the default constraints and, for a user with no goals, the
// starter goal
func seed(ctx *cli.Context) error {
	constraints, err := ctx.Store.GetConstraints(ctx.UserID)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveConstraints(ctx.UserID, constraints); err != nil {
		return fmt.Errorf("failed to save constraints: %w", err)
	}

	goals, err := ctx.Store.ListGoalsIncludingDeleted(ctx.UserID)
	if err != nil {
		return err
	}
	if len(goals) > 0 {
		return nil
	}

	draft := models.NewGoalDraft(constants.SeedGoalName)
	draft.PriorityWeight = constants.SeedGoalPriorityWeight
	draft.WeeklyTargetHours = constants.SeedGoalWeeklyTarget
	if err := ctx.Store.AddGoal(ctx.UserID, draft.ToGoal(uuid.New().String(), ctx.Clock())); err != nil {
		return fmt.Errorf("failed to add starter goal: %w", err)
	}
	logger.Info("Seeded starter goal", "user", ctx.UserID, "goal", draft.Name)
	ctx.Printf("Added starter goal: %s (%.1fh/week, weight %d)\n", draft.Name, draft.WeeklyTargetHours, draft.PriorityWeight)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	ctx.Println("  Migrating constraints...")
	constraints, err := source.GetConstraints(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get constraints from source: %w", err)
	}
	if err := ctx.Store.SaveConstraints(ctx.UserID, constraints); err != nil {
		return fmt.Errorf("failed to save constraints to destination: %w", err)
	}

	ctx.Println("  Migrating goals...")
	goals, err := source.ListGoalsIncludingDeleted(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get goals from source: %w", err)
	}
	for _, g := range goals {
		if err := ctx.Store.AddGoal(ctx.UserID, g); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", g.ID, err)
		}
	}
	ctx.Printf("    Migrated %d goals\n", len(goals))

	ctx.Println("  Migrating events...")
	events, err := source.ListEvents(ctx.UserID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to get events from source: %w", err)
	}
	for _, e := range events {
		if err := ctx.Store.AddEvent(ctx.UserID, e); err != nil {
			return fmt.Errorf("failed to add event %s: %w", e.ID, err)
		}
	}
	ctx.Printf("    Migrated %d events\n", len(events))

	logger.Info("Copied user data", "user", ctx.UserID, "goals", len(goals), "events", len(events))
	return nil
}

// describeLocation keeps connection strings out of command output
func describeLocation(config string) string {
	if postgres.IsConnString(config) {
		return "PostgreSQL database"
	}
	return config
}
