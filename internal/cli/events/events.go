package events

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/chronoforge/internal/calendar"
	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/utils"
	"github.com/julianstephens/chronoforge/internal/validation"
)

type AddCmd struct {
	Title  string `arg:"" help:"Event title."`
	Start  string `short:"s" help:"Start time (YYYY-MM-DD HH:MM or RFC 3339)."`
	End    string `short:"e" help:"End time (YYYY-MM-DD HH:MM or RFC 3339)."`
	AllDay string `help:"Block a whole day instead (YYYY-MM-DD, 'today' or 'tomorrow')."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	event, err := c.event(ctx)
	if err != nil {
		return err
	}
	if err := validation.ValidateEvent(event); err != nil {
		return err
	}
	if err := ctx.Store.AddEvent(ctx.UserID, event); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	ctx.InvalidatePlan()
	logger.Info("Event added", "user", ctx.UserID, "id", event.ID, "title", event.Title)

	ctx.Printf("Added event: %s (%s)\n", event.Title, describe(event, ctx.Loc()))
	ctx.Printf("ID: %s\n", event.ID)
	return nil
}

func (c *AddCmd) event(ctx *cli.Context) (models.FixedEvent, error) {
	e := models.FixedEvent{
		ID:     uuid.New().String(),
		Title:  strings.TrimSpace(c.Title),
		Source: constants.EventSourceManual,
	}

	if c.AllDay != "" {
		if c.Start != "" || c.End != "" {
			return models.FixedEvent{}, fmt.Errorf("--all-day cannot be combined with --start/--end")
		}
		day, err := ctx.ParseDate(c.AllDay)
		if err != nil {
			return models.FixedEvent{}, err
		}
		e.IsAllDay = true
		e.Start, e.End = utils.DayRange(day, 1)
		return e, nil
	}

	if c.Start == "" || c.End == "" {
		return models.FixedEvent{}, fmt.Errorf("--start and --end are required unless --all-day is set")
	}
	var err error
	if e.Start, err = utils.ParseDateTimeInLocation(c.Start, ctx.Loc()); err != nil {
		return models.FixedEvent{}, err
	}
	if e.End, err = utils.ParseDateTimeInLocation(c.End, ctx.Loc()); err != nil {
		return models.FixedEvent{}, err
	}
	return e, nil
}

type ListCmd struct {
	From string `help:"First day to show (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	Days int    `short:"d" help:"Number of days to show." default:"14"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	start, err := ctx.ParseDate(c.From)
	if err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	from, to := utils.DayRange(start, c.Days)

	events, err := ctx.Store.ListEvents(ctx.UserID, &from, &to)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		ctx.Printf("No events between %s and %s.\n", from.Format(constants.DateFormat), to.AddDate(0, 0, -1).Format(constants.DateFormat))
		return nil
	}

	ctx.Printf("Events from %s (%d days):\n\n", from.Format(constants.DateFormat), c.Days)
	for _, e := range events {
		ctx.Printf("  %s  %-30s  %s\n", shortID(e.ID), e.Title, describe(e, ctx.Loc()))
	}

	if result := validation.New().ValidateEvents(events); result.HasConflicts() {
		ctx.Println()
		ctx.Printf("%s", result.FormatReport())
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Event ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEvent(ctx.UserID, c.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	ctx.InvalidatePlan()
	logger.Info("Event deleted", "user", ctx.UserID, "id", c.ID)
	ctx.Printf("Deleted event %s\n", c.ID)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"YAML calendar file." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	events, err := calendar.ParseEvents(data, ctx.Loc())
	if err != nil {
		return err
	}

	for _, e := range events {
		if err := ctx.Store.AddEvent(ctx.UserID, e); err != nil {
			return fmt.Errorf("failed to import event %q: %w", e.Title, err)
		}
	}
	if len(events) > 0 {
		ctx.InvalidatePlan()
	}
	logger.Info("Events imported", "user", ctx.UserID, "file", c.File, "count", len(events))
	ctx.Printf("Imported %d event(s) from %s\n", len(events), c.File)
	return nil
}

func describe(e models.FixedEvent, loc *time.Location) string {
	start := e.Start.In(loc)
	if e.IsAllDay {
		return start.Format(constants.DateFormat) + " all day"
	}
	end := e.End.In(loc)
	if start.Format(constants.DateFormat) == end.Format(constants.DateFormat) {
		return fmt.Sprintf("%s %s-%s", start.Format(constants.DateFormat), start.Format(constants.TimeFormat), end.Format(constants.TimeFormat))
	}
	return fmt.Sprintf("%s - %s", start.Format(constants.DateTimeFormat), end.Format(constants.DateTimeFormat))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
