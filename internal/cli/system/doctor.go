package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/chronoforge/internal/backup"
	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/validation"
)

type DoctorCmd struct{}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkFail
	checkWarn
	checkSkipped
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, status checkStatus, err error) {
		switch status {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", err)
		case checkSkipped:
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", name, err)
		default:
			hasError = true
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
		}
	}
	run := func(name string, check func(*cli.Context) error) {
		if err := check(ctx); err != nil {
			report(name, checkFail, err)
			return
		}
		report(name, checkOK, nil)
	}

	dbErr := checkDBReachable(ctx)
	if dbErr != nil {
		report("Database reachable", checkFail, dbErr)
	} else {
		report("Database reachable", checkOK, nil)
	}

	dbChecks := []struct {
		name  string
		check func(*cli.Context) error
	}{
		{"Schema version", checkSchemaVersion},
		{"Constraints", checkConstraints},
		{"Goals", checkGoals},
		{"Events", checkEvents},
	}
	for _, c := range dbChecks {
		if dbErr != nil {
			report(c.name, checkSkipped, errors.New("database not reachable"))
			continue
		}
		run(c.name, c.check)
	}

	if err := checkBackupsPresent(ctx); err != nil {
		report("Backups present", checkWarn, err)
	} else {
		report("Backups present", checkOK, nil)
	}

	run("Clock/timezone", checkClockTimezone)

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetConstraints(ctx.UserID); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if errors.Is(err, errNoMigrations) {
		return nil
	}
	if err != nil {
		return err
	}

	st, err := runner.Status()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'chronoforge migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkConstraints(ctx *cli.Context) error {
	c, err := ctx.Store.GetConstraints(ctx.UserID)
	if err != nil {
		return err
	}
	return validation.ValidateConstraints(c)
}

func checkGoals(ctx *cli.Context) error {
	goals, err := ctx.Store.ListGoals(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	result := validation.New().ValidateGoals(goals)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkEvents(ctx *cli.Context) error {
	events, err := ctx.Store.ListEvents(ctx.UserID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	result := validation.New().ValidateEvents(events)
	for _, c := range result.Conflicts {
		if c.Type == validation.ConflictInvalidEvent {
			return fmt.Errorf("invalid event %v: %s", c.Items, c.Description)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path, ok := ctx.SQLitePath()
	if !ok {
		return errors.New("backups are only managed for the SQLite store")
	}
	backups, err := backup.NewManager(path).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found (run 'chronoforge backup create')")
	}
	if age := ctx.Clock().Sub(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2000 || now.Year() > 2100 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	_, offset := now.In(ctx.Loc()).Zone()
	if offset < -12*60*60 || offset > 14*60*60 {
		return fmt.Errorf("timezone %s has an impossible UTC offset of %ds", ctx.Loc(), offset)
	}
	return nil
}
