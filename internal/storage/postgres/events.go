package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/chronoforge/internal/models"
)

func (s *Store) AddEvent(userID string, event models.FixedEvent) error {
	if err := s.ready(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO events (id, user_id, title, start_time, end_time, is_all_day, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_all_day = EXCLUDED.is_all_day,
			source = EXCLUDED.source`,
		event.ID, userID, event.Title, event.Start, event.End, event.IsAllDay, event.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (s *Store) ListEvents(userID string, from, to *time.Time) ([]models.FixedEvent, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(`SELECT id, title, start_time, end_time, is_all_day, source FROM events WHERE user_id = $1`)
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&b, " AND end_time > $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&b, " AND start_time < $%d", len(args))
	}
	b.WriteString(" ORDER BY start_time, id")

	rows, err := s.db.Query(b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.FixedEvent{}
	for rows.Next() {
		var e models.FixedEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Start, &e.End, &e.IsAllDay, &e.Source); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) DeleteEvent(userID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.db.Exec(`DELETE FROM events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("event %s", id))
}
