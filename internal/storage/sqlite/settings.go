package sqlite

import (
	"fmt"

	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

func (s *Store) GetConstraints(userID string) (models.CapacityConstraints, error) {
	if err := s.ready(); err != nil {
		return models.CapacityConstraints{}, err
	}

	rows, err := s.db.Query("SELECT key, value FROM settings WHERE user_id = ?", userID)
	if err != nil {
		return models.CapacityConstraints{}, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.CapacityConstraints{}, err
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.CapacityConstraints{}, err
	}

	return storage.ConstraintsFromSettings(settings)
}

func (s *Store) SaveConstraints(userID string, c models.CapacityConstraints) error {
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (user_id, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	settings := storage.ConstraintsToSettings(c)
	for _, key := range storage.SettingKeys(settings) {
		if _, err := stmt.Exec(userID, key, settings[key]); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	return tx.Commit()
}
