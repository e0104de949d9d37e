package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/migration"
)

// migrator is implemented by the SQL-backed stores
type migrator interface {
	Migrator() (*migration.Runner, error)
}

var errNoMigrations = errors.New("this storage backend has no schema migrations")

func runnerFor(ctx *cli.Context) (*migration.Runner, error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil, errNoMigrations
	}
	return m.Migrator()
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
