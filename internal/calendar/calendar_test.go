package calendar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

type stubSource struct {
	name   string
	events []models.FixedEvent
	err    error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) FetchEvents(ctx context.Context, userID string, from, to time.Time) ([]models.FixedEvent, error) {
	return s.events, s.err
}

type stubLister struct {
	from, to *time.Time
	events   []models.FixedEvent
}

func (l *stubLister) ListEvents(userID string, from, to *time.Time) ([]models.FixedEvent, error) {
	l.from, l.to = from, to
	return l.events, nil
}

func TestFetchOrEmpty(t *testing.T) {
	ctx := context.Background()

	failing := stubSource{name: "broken", err: errors.New("token expired")}
	got := FetchOrEmpty(ctx, failing, "alice", at(1, 0), at(8, 0))
	if got == nil || len(got) != 0 {
		t.Errorf("FetchOrEmpty() on failure = %v, want empty non-nil slice", got)
	}

	if got := FetchOrEmpty(ctx, nil, "alice", at(1, 0), at(8, 0)); got == nil || len(got) != 0 {
		t.Errorf("FetchOrEmpty(nil) = %v, want empty non-nil slice", got)
	}

	if got := FetchOrEmpty(ctx, stubSource{name: "empty"}, "alice", at(1, 0), at(8, 0)); got == nil {
		t.Error("FetchOrEmpty() should normalise nil to an empty slice")
	}

	ok := stubSource{name: "ok", events: []models.FixedEvent{{ID: "e1", Title: "Lecture", Start: at(1, 9), End: at(1, 10)}}}
	if got := FetchOrEmpty(ctx, ok, "alice", at(1, 0), at(8, 0)); len(got) != 1 {
		t.Errorf("FetchOrEmpty() = %v, want the source's events", got)
	}
}

func TestStoreSource_PassesRange(t *testing.T) {
	lister := &stubLister{events: []models.FixedEvent{{ID: "e1"}}}
	src := &StoreSource{Store: lister}

	from, to := at(1, 0), at(15, 0)
	events, err := src.FetchEvents(context.Background(), "alice", from, to)
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Errorf("FetchEvents() = %v", events)
	}
	if lister.from == nil || !lister.from.Equal(from) || lister.to == nil || !lister.to.Equal(to) {
		t.Errorf("range not forwarded: from=%v to=%v", lister.from, lister.to)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.FetchEvents(ctx, "alice", from, to); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchEvents() on cancelled ctx error = %v, want context.Canceled", err)
	}
}

func TestMultiSource(t *testing.T) {
	ctx := context.Background()
	a := stubSource{name: "a", events: []models.FixedEvent{{ID: "late", Start: at(2, 9), End: at(2, 10)}}}
	b := stubSource{name: "b", events: []models.FixedEvent{{ID: "early", Start: at(1, 9), End: at(1, 10)}}}
	broken := stubSource{name: "broken", err: errors.New("offline")}

	events, err := MultiSource{a, broken, b}.FetchEvents(ctx, "alice", at(1, 0), at(8, 0))
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(events) != 2 || events[0].ID != "early" || events[1].ID != "late" {
		t.Errorf("FetchEvents() = %+v, want early then late", events)
	}

	if _, err := (MultiSource{broken}).FetchEvents(ctx, "alice", at(1, 0), at(8, 0)); err == nil {
		t.Error("FetchEvents() expected error when every source fails")
	}
}

func TestParseEvents(t *testing.T) {
	data := []byte(`
events:
  - title: Lab
    start: "2024-01-02 14:00"
    end: "2024-01-02 16:00"
  - id: lec-1
    title: Lecture
    start: "2024-01-01T09:00:00Z"
    end: "2024-01-01T10:30:00Z"
  - title: Conference
    all_day: true
    date: "2024-01-03"
`)

	events, err := ParseEvents(data, time.UTC)
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("ParseEvents() returned %d events, want 3", len(events))
	}

	if events[0].ID != "lec-1" || events[0].Title != "Lecture" {
		t.Errorf("events[0] = %+v, want the lecture first", events[0])
	}
	if events[1].ID == "" {
		t.Error("events without an id should get a generated one")
	}
	if !events[1].Start.Equal(at(2, 14)) || !events[1].End.Equal(at(2, 16)) {
		t.Errorf("lab times = %v..%v", events[1].Start, events[1].End)
	}
	conf := events[2]
	if !conf.IsAllDay || !conf.Start.Equal(at(3, 0)) || !conf.End.Equal(at(4, 0)) {
		t.Errorf("all-day event = %+v", conf)
	}
	for _, e := range events {
		if e.Source != constants.EventSourceYAML {
			t.Errorf("event %q source = %q, want %q", e.Title, e.Source, constants.EventSourceYAML)
		}
	}

	again, _ := ParseEvents(data, time.UTC)
	if again[1].ID != events[1].ID {
		t.Error("generated IDs should be deterministic")
	}
}

func TestParseEvents_TopLevelList(t *testing.T) {
	data := []byte(`
- title: Standup
  start: "2024-01-01 09:00"
  end: "2024-01-01 09:15"
`)
	events, err := ParseEvents(data, time.UTC)
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	if len(events) != 1 || events[0].Title != "Standup" {
		t.Errorf("ParseEvents() = %+v", events)
	}
}

func TestParseEvents_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a list", "title: lonely"},
		{"missing title", "events:\n  - start: \"2024-01-01 09:00\"\n    end: \"2024-01-01 10:00\""},
		{"end before start", "events:\n  - title: Backwards\n    start: \"2024-01-01 10:00\"\n    end: \"2024-01-01 09:00\""},
		{"bad time", "events:\n  - title: Vague\n    start: soon\n    end: later"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEvents([]byte(tt.data), time.UTC); err == nil {
				t.Error("ParseEvents() expected error")
			}
		})
	}
}

func TestYAMLFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.yml")
	content := `events:
  - title: Monday class
    start: "2024-01-01 09:00"
    end: "2024-01-01 10:00"
  - title: Next week
    start: "2024-01-09 09:00"
    end: "2024-01-09 10:00"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	src := &YAMLFileSource{Path: path, Location: time.UTC}
	events, err := src.FetchEvents(context.Background(), "alice", at(1, 0), at(8, 0))
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(events) != 1 || events[0].Title != "Monday class" {
		t.Errorf("FetchEvents() = %+v, want only the first week's event", events)
	}

	missing := &YAMLFileSource{Path: filepath.Join(dir, "nope.yml")}
	events, err = missing.FetchEvents(context.Background(), "alice", at(1, 0), at(8, 0))
	if err != nil || len(events) != 0 {
		t.Errorf("FetchEvents() on missing file = %v, %v; want no events and no error", events, err)
	}
}
