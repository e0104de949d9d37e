package models

import "time"

// FixedEvent is an immovable busy interval sourced from a calendar
type FixedEvent struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	IsAllDay bool      `json:"is_all_day" yaml:"is_all_day"`
	Source   string    `json:"source" yaml:"source"`
}

// Overlaps reports whether the event intersects [start, end)
func (e FixedEvent) Overlaps(start, end time.Time) bool {
	return e.End.After(start) && e.Start.Before(end)
}

// Duration returns the event length
func (e FixedEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
