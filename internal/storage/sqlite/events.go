package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

func (s *Store) AddEvent(userID string, event models.FixedEvent) error {
	if err := s.ready(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO events (id, user_id, title, start_time, end_time, is_all_day, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, userID, event.Title, formatTime(event.Start), formatTime(event.End), event.IsAllDay, event.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// ListEvents loads the user's events and filters the range in Go, since the
// stored timestamps keep their original offsets and do not sort as text.
func (s *Store) ListEvents(userID string, from, to *time.Time) ([]models.FixedEvent, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, title, start_time, end_time, is_all_day, source
		FROM events WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.FixedEvent{}
	for rows.Next() {
		var e models.FixedEvent
		var start, end string
		if err := rows.Scan(&e.ID, &e.Title, &start, &end, &e.IsAllDay, &e.Source); err != nil {
			return nil, err
		}
		if e.Start, err = parseTime(start); err != nil {
			return nil, err
		}
		if e.End, err = parseTime(end); err != nil {
			return nil, err
		}
		if storage.EventInRange(e, from, to) {
			events = append(events, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storage.SortEvents(events)
	return events, nil
}

func (s *Store) DeleteEvent(userID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.db.Exec(`DELETE FROM events WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("event %s", id))
}
