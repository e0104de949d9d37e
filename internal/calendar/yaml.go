package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
	"github.com/julianstephens/chronoforge/internal/utils"
)

// eventNamespace seeds deterministic IDs for YAML events without one
var eventNamespace = uuid.MustParse("7d7c3f2e-4b1a-4c55-9d8e-2f1f6a0c9b31")

type yamlFile struct {
	Events []yamlEvent `yaml:"events"`
}

type yamlEvent struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	AllDay bool   `yaml:"all_day"`
	Date   string `yaml:"date"`
}

// ParseEvents reads either an `events:` list or a top-level list. Times use
// "YYYY-MM-DD HH:MM" in loc or RFC 3339; all-day events may give only `date`.
func ParseEvents(data []byte, loc *time.Location) ([]models.FixedEvent, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err == nil && file.Events != nil {
		return eventsFrom(file.Events, loc)
	}

	var list []yamlEvent
	if err := yaml.Unmarshal(data, &list); err == nil && list != nil {
		return eventsFrom(list, loc)
	}

	return nil, fmt.Errorf("calendar file must contain `events:` list or a top-level list")
}

func eventsFrom(raw []yamlEvent, loc *time.Location) ([]models.FixedEvent, error) {
	events := make([]models.FixedEvent, 0, len(raw))
	for i, r := range raw {
		e, err := r.toEvent(loc)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i+1, r.Title, err)
		}
		events = append(events, e)
	}
	storage.SortEvents(events)
	return events, nil
}

func (r yamlEvent) toEvent(loc *time.Location) (models.FixedEvent, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return models.FixedEvent{}, fmt.Errorf("title is required")
	}

	e := models.FixedEvent{
		ID:       r.ID,
		Title:    title,
		IsAllDay: r.AllDay,
		Source:   constants.EventSourceYAML,
	}

	switch {
	case r.AllDay && r.Date != "":
		day, err := utils.ParseDateInLocation(r.Date, loc)
		if err != nil {
			return models.FixedEvent{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
		}
		e.Start, e.End = utils.DayRange(day, 1)
	default:
		var err error
		if e.Start, err = utils.ParseDateTimeInLocation(r.Start, loc); err != nil {
			return models.FixedEvent{}, err
		}
		if e.End, err = utils.ParseDateTimeInLocation(r.End, loc); err != nil {
			return models.FixedEvent{}, err
		}
	}

	if !e.End.After(e.Start) {
		return models.FixedEvent{}, fmt.Errorf("end must be after start")
	}

	if e.ID == "" {
		key := e.Title + "|" + e.Start.UTC().Format(time.RFC3339) + "|" + e.End.UTC().Format(time.RFC3339)
		e.ID = uuid.NewSHA1(eventNamespace, []byte(key)).String()
	}
	return e, nil
}

// YAMLFileSource reads events from a YAML calendar export. A missing file
// yields no events.
type YAMLFileSource struct {
	Path     string
	Location *time.Location
}

func (s *YAMLFileSource) Name() string { return "yaml" }

func (s *YAMLFileSource) FetchEvents(ctx context.Context, userID string, from, to time.Time) ([]models.FixedEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read calendar file: %w", err)
	}

	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	all, err := ParseEvents(data, loc)
	if err != nil {
		return nil, fmt.Errorf("parse calendar file %s: %w", s.Path, err)
	}

	events := []models.FixedEvent{}
	for _, e := range all {
		if storage.EventInRange(e, &from, &to) {
			events = append(events, e)
		}
	}
	return events, nil
}
