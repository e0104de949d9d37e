package postgres

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

	_, err = s.db.Exec(`
		INSERT INTO plan_cache (user_id, plan_json, generated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET plan_json = EXCLUDED.plan_json, generated_at = EXCLUDED.generated_at`,
		userID, raw, plan.GeneratedAt)
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
	err := s.db.QueryRow(`SELECT plan_json FROM plan_cache WHERE user_id = $1`, userID).Scan(&raw)
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
	_, err := s.db.Exec(`DELETE FROM plan_cache WHERE user_id = $1`, userID)
	return err
}
