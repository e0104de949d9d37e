package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/chronoforge/internal/calendar"
	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/cli/backups"
	"github.com/julianstephens/chronoforge/internal/cli/constraints"
	"github.com/julianstephens/chronoforge/internal/cli/events"
	"github.com/julianstephens/chronoforge/internal/cli/goals"
	"github.com/julianstephens/chronoforge/internal/cli/plans"
	"github.com/julianstephens/chronoforge/internal/cli/system"
	"github.com/julianstephens/chronoforge/internal/constants"
	errs "github.com/julianstephens/chronoforge/internal/errors"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/storage/postgres"
	"github.com/julianstephens/chronoforge/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, .json path, PostgreSQL connection string, or 'keyring'. PostgreSQL credentials must NOT be embedded on the command line." default:"${config}"`
	User     string `short:"u" help:"User whose goals and plans to use." default:"${user}"`
	Timezone string `help:"IANA timezone used for dates and rendering." default:"Local"`
	Calendar string `help:"YAML calendar file consulted alongside stored events." type:"existingfile"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd    `cmd:"" help:"Initialize chronoforge storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive plan viewer." default:"1"`
	Capacity plans.CapacityCmd `cmd:"" help:"Show per-day capacity from the current plan."`
	Tradeoff plans.TradeoffCmd `cmd:"" help:"Show what a new goal would cost existing goals."`
	Plan     struct {
		Generate plans.GenerateCmd `cmd:"" help:"Generate and cache a plan." default:"withargs"`
		Show     plans.ShowCmd     `cmd:"" help:"Show the cached plan."`
	} `cmd:"" help:"Generate or show plans."`
	Goal struct {
		Add     goals.AddCmd     `cmd:"" help:"Add a goal."`
		List    goals.ListCmd    `cmd:"" help:"List goals."`
		Delete  goals.DeleteCmd  `cmd:"" help:"Delete a goal."`
		Restore goals.RestoreCmd `cmd:"" help:"Restore a deleted goal."`
		Import  goals.ImportCmd  `cmd:"" help:"Import goals from a YAML file."`
	} `cmd:"" help:"Manage goals."`
	Event struct {
		Add    events.AddCmd    `cmd:"" help:"Add a fixed event."`
		List   events.ListCmd   `cmd:"" help:"List fixed events."`
		Delete events.DeleteCmd `cmd:"" help:"Delete a fixed event."`
		Import events.ImportCmd `cmd:"" help:"Import events from a YAML calendar file."`
	} `cmd:"" help:"Manage fixed events."`
	Constraints struct {
		Show constraints.ShowCmd `cmd:"" help:"Show capacity constraints." default:"1"`
		Set  constraints.SetCmd  `cmd:"" help:"Change capacity constraints."`
	} `cmd:"" help:"Manage capacity constraints."`
	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with credentials hidden."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage the database connection stored in the OS keyring."`
}

// Commands that manage their own storage lifecycle, or need none
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func defaultUser() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return constants.DefaultUser
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly goal planner that fits weighted goals around fixed commitments"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
			"user":    defaultUser(),
		},
	)

	command := strings.Fields(ctx.Command())[0]

	configDir := filepath.Dir(constants.DefaultConfigPath)
	if !postgres.IsConnString(CLI.Config) && CLI.Config != "keyring" {
		configDir = filepath.Dir(CLI.Config)
	}
	configDir, err := cli.ExpandPath(configDir)
	if err != nil {
		errs.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errs.Fatalf("failed to initialize logger: %v", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errs.Fatalf("invalid timezone %q: %v", CLI.Timezone, err)
	}

	appCtx := &cli.Context{
		UserID:   CLI.User,
		Location: loc,
	}
	if CLI.Calendar != "" {
		appCtx.Calendar = &calendar.YAMLFileSource{Path: CLI.Calendar, Location: loc}
	}

	if command != "keyring" {
		store, err := cli.OpenStore(CLI.Config)
		if err != nil {
			errs.Fatal(err)
		}
		appCtx.Store = store
		if !skipLoad[command] {
			if err := store.Load(); err != nil {
				errs.Fatal(err)
			}
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "user", appCtx.UserID)
	err = ctx.Run(appCtx)
	if appCtx.Store != nil {
		if closeErr := appCtx.Store.Close(); closeErr != nil {
			logger.Warn("Failed to close storage", "error", closeErr)
		}
	}
	errs.Fatal(err)
}
