package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/chronoforge/internal/models"
)

const jsonStoreVersion = 1

// userData is everything the JSON store keeps for one user
type userData struct {
	Constraints *models.CapacityConstraints  `json:"constraints,omitempty"`
	Goals       map[string]models.Goal       `json:"goals"`
	Events      map[string]models.FixedEvent `json:"events"`
	Plan        *models.PlanResponse         `json:"plan,omitempty"`
}

// Store is the on-disk layout of the JSON store
type Store struct {
	Version int                  `json:"version"`
	Users   map[string]*userData `json:"users"`
}

// JSONStore is a single-file Provider for small setups and tests
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = &Store{
		Version: jsonStoreVersion,
		Users:   make(map[string]*userData),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.store.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", s.store.Version, jsonStoreVersion)
	}
	if s.store.Users == nil {
		s.store.Users = make(map[string]*userData)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

// user returns the user's bucket, creating it when create is set
func (s *JSONStore) user(userID string, create bool) (*userData, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	u, ok := s.store.Users[userID]
	if !ok {
		if !create {
			return nil, nil
		}
		u = &userData{}
		s.store.Users[userID] = u
	}
	if u.Goals == nil {
		u.Goals = make(map[string]models.Goal)
	}
	if u.Events == nil {
		u.Events = make(map[string]models.FixedEvent)
	}
	return u, nil
}

func (s *JSONStore) GetConstraints(userID string) (models.CapacityConstraints, error) {
	u, err := s.user(userID, false)
	if err != nil {
		return models.CapacityConstraints{}, err
	}
	if u == nil || u.Constraints == nil {
		return models.DefaultConstraints(), nil
	}
	return *u.Constraints, nil
}

func (s *JSONStore) SaveConstraints(userID string, c models.CapacityConstraints) error {
	u, err := s.user(userID, true)
	if err != nil {
		return err
	}
	u.Constraints = &c
	return s.save()
}

func (s *JSONStore) AddGoal(userID string, goal models.Goal) error {
	u, err := s.user(userID, true)
	if err != nil {
		return err
	}
	u.Goals[goal.ID] = goal
	return s.save()
}

func (s *JSONStore) GetGoal(userID, id string) (models.Goal, error) {
	u, err := s.user(userID, false)
	if err != nil {
		return models.Goal{}, err
	}
	if u == nil {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	goal, ok := u.Goals[id]
	if !ok || goal.DeletedAt != nil {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return goal, nil
}

func (s *JSONStore) ListGoals(userID string) ([]models.Goal, error) {
	return s.listGoals(userID, false)
}

func (s *JSONStore) ListGoalsIncludingDeleted(userID string) ([]models.Goal, error) {
	return s.listGoals(userID, true)
}

func (s *JSONStore) listGoals(userID string, includeDeleted bool) ([]models.Goal, error) {
	u, err := s.user(userID, false)
	if err != nil {
		return nil, err
	}
	goals := []models.Goal{}
	if u == nil {
		return goals, nil
	}
	for _, g := range u.Goals {
		if g.DeletedAt != nil && !includeDeleted {
			continue
		}
		goals = append(goals, g)
	}
	SortGoals(goals)
	return goals, nil
}

func (s *JSONStore) DeleteGoal(userID, id string) error {
	goal, err := s.GetGoal(userID, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	goal.DeletedAt = &now
	return s.AddGoal(userID, goal)
}

func (s *JSONStore) RestoreGoal(userID, id string) error {
	u, err := s.user(userID, false)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	goal, ok := u.Goals[id]
	if !ok || goal.DeletedAt == nil {
		return fmt.Errorf("deleted goal %s: %w", id, ErrNotFound)
	}
	goal.DeletedAt = nil
	u.Goals[id] = goal
	return s.save()
}

func (s *JSONStore) AddEvent(userID string, event models.FixedEvent) error {
	u, err := s.user(userID, true)
	if err != nil {
		return err
	}
	u.Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) ListEvents(userID string, from, to *time.Time) ([]models.FixedEvent, error) {
	u, err := s.user(userID, false)
	if err != nil {
		return nil, err
	}
	events := []models.FixedEvent{}
	if u == nil {
		return events, nil
	}
	for _, e := range u.Events {
		if EventInRange(e, from, to) {
			events = append(events, e)
		}
	}
	SortEvents(events)
	return events, nil
}

func (s *JSONStore) DeleteEvent(userID, id string) error {
	u, err := s.user(userID, false)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if _, ok := u.Events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	delete(u.Events, id)
	return s.save()
}

func (s *JSONStore) SavePlan(userID string, plan models.PlanResponse) error {
	u, err := s.user(userID, true)
	if err != nil {
		return err
	}
	u.Plan = &plan
	return s.save()
}

func (s *JSONStore) GetPlan(userID string) (models.PlanResponse, error) {
	u, err := s.user(userID, false)
	if err != nil {
		return models.PlanResponse{}, err
	}
	if u == nil || u.Plan == nil {
		return models.PlanResponse{}, fmt.Errorf("cached plan: %w", ErrNotFound)
	}
	return *u.Plan, nil
}

func (s *JSONStore) ClearPlan(userID string) error {
	u, err := s.user(userID, false)
	if err != nil {
		return err
	}
	if u == nil || u.Plan == nil {
		return nil
	}
	u.Plan = nil
	return s.save()
}
