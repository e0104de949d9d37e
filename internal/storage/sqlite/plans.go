package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

func (s *Store) SavePlan(userID string, plan models.PlanResponse) error {
	if err := s.ready(); err != nil {
		return err
	}

	raw, err := storage.MarshalPlan(plan)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO plan_cache (user_id, plan_json, generated_at) VALUES (?, ?, ?)`,
		userID, raw, formatTime(plan.GeneratedAt))
	if err != nil {
		return fmt.Errorf("failed to cache plan: %w", err)
	}
	return nil
}

func (s *Store) GetPlan(userID string) (models.PlanResponse, error) {
	if err := s.ready(); err != nil {
		return models.PlanResponse{}, err
	}

	var raw string
	err := s.db.QueryRow(`SELECT plan_json FROM plan_cache WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlanResponse{}, fmt.Errorf("cached plan: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.PlanResponse{}, err
	}
	return storage.UnmarshalPlan(raw)
}

func (s *Store) ClearPlan(userID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM plan_cache WHERE user_id = ?`, userID)
	return err
}
