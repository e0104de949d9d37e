// Package cli holds the shared command context and helpers for the
// chronoforge subcommands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/chronoforge/internal/backup"
	"github.com/julianstephens/chronoforge/internal/calendar"
	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/planner"
	"github.com/julianstephens/chronoforge/internal/storage"
	"github.com/julianstephens/chronoforge/internal/storage/sqlite"
	"github.com/julianstephens/chronoforge/internal/utils"
)

type Context struct {
	Store    storage.Provider
	UserID   string
	Location *time.Location
	// Calendar, when set, is consulted alongside stored events
	Calendar calendar.Source
	In       io.Reader
	Out      io.Writer
	Now      func() time.Time
}

// Stdin returns the reader used for confirmation prompts
func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Confirm prints prompt and reports whether the user answered yes
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.Stdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Stdout returns the command output writer
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line of command output
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Loc returns the user's location, UTC when unset
func (c *Context) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Clock returns the current time
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Events returns the event source used for planning
func (c *Context) Events() calendar.Source {
	stored := &calendar.StoreSource{Store: c.Store}
	if c.Calendar == nil {
		return stored
	}
	return calendar.MultiSource{stored, c.Calendar}
}

// Planner builds a planning service over the context's store
func (c *Context) Planner() *planner.Service {
	return planner.New(planner.Config{
		Goals:       c.Store,
		Constraints: c.Store,
		Cache:       c.Store,
		Events:      c.Events(),
		Location:    c.Loc(),
		Now:         c.Now,
	})
}

// SQLitePath returns the database path when the store is SQLite
func (c *Context) SQLitePath() (string, bool) {
	if s, ok := c.Store.(*sqlite.Store); ok {
		return s.GetConfigPath(), true
	}
	return "", false
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path, ok := c.SQLitePath()
	if !ok {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDate accepts YYYY-MM-DD, "today" or "tomorrow" in the user's location
func (c *Context) ParseDate(value string) (time.Time, error) {
	today := utils.StartOfDay(c.Clock().In(c.Loc()))
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	t, err := utils.ParseDateInLocation(value, c.Loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'tomorrow': %w", value, err)
	}
	return t, nil
}

// ParseWindows parses time-window names
func ParseWindows(values []string) ([]constants.TimeWindow, error) {
	windows := make([]constants.TimeWindow, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			w := constants.TimeWindow(part)
			valid := false
			for _, known := range constants.TimeWindows {
				if w == known {
					valid = true
					break
				}
			}
			if !valid {
				return nil, fmt.Errorf("invalid time window: %s (use morning, afternoon or evening)", part)
			}
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// FormatWindows renders windows as a comma-separated list, "any" when empty
func FormatWindows(windows []constants.TimeWindow) string {
	if len(windows) == 0 {
		return "any"
	}
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = string(w)
	}
	return strings.Join(parts, ",")
}

// InvalidatePlan drops the cached plan after goals, events or constraints change
func (c *Context) InvalidatePlan() {
	if err := c.Store.ClearPlan(c.UserID); err != nil {
		logger.Warn("Failed to clear cached plan", "user", c.UserID, "error", err)
	}
}
