package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

const goalColumns = `id, name, category, priority_weight, weekly_target_hours,
	preferred_windows, hard_deadline, created_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var category, windows string
	var deadline, deletedAt sql.NullTime

	if err := row.Scan(
		&g.ID, &g.Name, &category, &g.PriorityWeight, &g.WeeklyTargetHours,
		&windows, &deadline, &g.CreatedAt, &deletedAt,
	); err != nil {
		return models.Goal{}, err
	}

	g.Category = constants.GoalCategory(category)
	g.HardDeadline = fromNullTime(deadline)
	g.DeletedAt = fromNullTime(deletedAt)

	var err error
	if g.PreferredWindows, err = storage.DecodeWindows(windows); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// AddGoal inserts the goal or replaces an existing one with the same ID
func (s *Store) AddGoal(userID string, goal models.Goal) error {
	if err := s.ready(); err != nil {
		return err
	}

	windows, err := storage.EncodeWindows(goal.PreferredWindows)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO goals (id, user_id, name, category, priority_weight, weekly_target_hours,
			preferred_windows, hard_deadline, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			priority_weight = EXCLUDED.priority_weight,
			weekly_target_hours = EXCLUDED.weekly_target_hours,
			preferred_windows = EXCLUDED.preferred_windows,
			hard_deadline = EXCLUDED.hard_deadline,
			created_at = EXCLUDED.created_at,
			deleted_at = EXCLUDED.deleted_at`,
		goal.ID, userID, goal.Name, string(goal.Category), goal.PriorityWeight, goal.WeeklyTargetHours,
		windows, nullTime(goal.HardDeadline), goal.CreatedAt, nullTime(goal.DeletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(userID, id string) (models.Goal, error) {
	if err := s.ready(); err != nil {
		return models.Goal{}, err
	}

	row := s.db.QueryRow(`SELECT `+goalColumns+`
		FROM goals WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`, userID, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}
	return g, err
}

func (s *Store) ListGoals(userID string) ([]models.Goal, error) {
	return s.listGoals(`SELECT `+goalColumns+`
		FROM goals WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, name`, userID)
}

func (s *Store) ListGoalsIncludingDeleted(userID string) ([]models.Goal, error) {
	return s.listGoals(`SELECT `+goalColumns+`
		FROM goals WHERE user_id = $1
		ORDER BY created_at, name`, userID)
}

func (s *Store) listGoals(query, userID string) ([]models.Goal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) DeleteGoal(userID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.db.Exec(`UPDATE goals SET deleted_at = $1
		WHERE user_id = $2 AND id = $3 AND deleted_at IS NULL`,
		time.Now().UTC(), userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("goal %s", id))
}

func (s *Store) RestoreGoal(userID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.db.Exec(`UPDATE goals SET deleted_at = NULL
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NOT NULL`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to restore goal: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("deleted goal %s", id))
}
