package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"smarthabit/internal/models"
)

// JSONStore is the flat fallback backend: the whole GameState serialized as
// one blob, read-modify-written on every change. It exists so the engine
// keeps working when the SQLite store cannot be opened.
type JSONStore struct {
	path      string
	state     *models.GameState
	savedHash uint64
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	seeded := seededState()
	s.state = &seeded
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'smarthabit init' first")
		}
		return fmt.Errorf("%w: read storage: %v", ErrStorageUnavailable, err)
	}

	state := &models.GameState{}
	if err := json.Unmarshal(data, state); err != nil {
		return fmt.Errorf("%w: parse storage: %v", ErrStorageUnavailable, err)
	}

	if state.UserID == "" {
		state.UserID = models.DefaultUserID
	}
	if state.Level < 1 {
		state.Level = 1
	}
	if len(state.Badges) == 0 {
		state.Badges = models.SeedBadges()
	}
	// A stale completed-today marker from a previous day reads as empty.
	if state.CompletedOn != models.DayOf(time.Now()) {
		state.CompletedToday = nil
		state.CompletedOn = ""
	}

	s.state = state
	s.savedHash, _ = hashstructure.Hash(state, hashstructure.FormatV2, nil)
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the blob, skipping the write when the state hash matches what
// is already on disk.
func (s *JSONStore) save() error {
	hash, err := hashstructure.Hash(s.state, hashstructure.FormatV2, nil)
	if err == nil && hash == s.savedHash {
		return nil
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	s.savedHash = hash
	return nil
}

func (s *JSONStore) loaded() error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetUserData(userID string) (models.UserProgress, error) {
	if err := s.loaded(); err != nil {
		return models.UserProgress{}, err
	}
	if s.state.UserID != userID {
		return models.UserProgress{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return models.UserProgress{
		Level:         s.state.Level,
		TotalXP:       s.state.TotalXP,
		LastSentiment: s.state.LastSentiment,
	}, nil
}

func (s *JSONStore) UpdateUserXP(userID string, totalXP, level int) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.state.TotalXP = totalXP
	s.state.Level = level
	return s.save()
}

func (s *JSONStore) UpdateUserSentiment(userID string, sentiment models.Sentiment) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.state.LastSentiment = &sentiment
	return s.save()
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, len(s.state.Habits))
	copy(habits, s.state.Habits)
	// Newest first, matching the structured store's ordering.
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *JSONStore) CreateHabit(h models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for _, existing := range s.state.Habits {
		if existing.ID == h.ID {
			return fmt.Errorf("%w: habit %s", ErrConstraintViolation, h.ID)
		}
	}
	s.state.Habits = append(s.state.Habits, h)
	return s.save()
}

func (s *JSONStore) UpdateHabit(h models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, existing := range s.state.Habits {
		if existing.ID == h.ID {
			s.state.Habits[i] = h
			return s.save()
		}
	}
	return fmt.Errorf("%w: habit %s", ErrNotFound, h.ID)
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, existing := range s.state.Habits {
		if existing.ID == id {
			s.state.Habits = append(s.state.Habits[:i], s.state.Habits[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("%w: habit %s", ErrNotFound, id)
}

func (s *JSONStore) GetAllBadges() ([]models.Badge, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	badges := make([]models.Badge, len(s.state.Badges))
	copy(badges, s.state.Badges)
	return badges, nil
}

func (s *JSONStore) UnlockBadge(id string, at time.Time) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, b := range s.state.Badges {
		if b.ID != id {
			continue
		}
		if b.Unlocked {
			return nil
		}
		b.Unlocked = true
		t := at
		b.UnlockedAt = &t
		s.state.Badges[i] = b
		return s.save()
	}
	return fmt.Errorf("%w: badge %s", ErrNotFound, id)
}

// RecordCompletion marks the habit done for the record's calendar day. The
// flat store keeps no per-completion history; the day marker is the only
// trace, which is enough for the engine's same-day rejection.
func (s *JSONStore) RecordCompletion(rec models.CompletionRecord) error {
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := findHabit(s.state.Habits, rec.HabitID); !ok {
		return fmt.Errorf("%w: habit %s", ErrNotFound, rec.HabitID)
	}

	day := models.DayOf(rec.CompletedAt)
	if s.state.CompletedOn != day {
		s.state.CompletedToday = nil
		s.state.CompletedOn = day
	}
	for _, id := range s.state.CompletedToday {
		if id == rec.HabitID {
			return s.save()
		}
	}
	s.state.CompletedToday = append(s.state.CompletedToday, rec.HabitID)
	return s.save()
}

func (s *JSONStore) GetCompletionsForHabit(habitID string) ([]models.CompletionRecord, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	// No completion log in the flat store.
	return nil, nil
}

func (s *JSONStore) ExportAllData() (models.GameState, error) {
	if err := s.loaded(); err != nil {
		return models.GameState{}, err
	}
	out := *s.state
	out.Habits = make([]models.Habit, len(s.state.Habits))
	copy(out.Habits, s.state.Habits)
	out.Badges = make([]models.Badge, len(s.state.Badges))
	copy(out.Badges, s.state.Badges)
	out.CompletedToday = append([]string(nil), s.state.CompletedToday...)
	return out, nil
}

func (s *JSONStore) ResetDatabase() error {
	if err := s.loaded(); err != nil {
		return err
	}
	seeded := seededState()
	s.state = &seeded
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func seededState() models.GameState {
	return models.GameState{
		UserID: models.DefaultUserID,
		Level:  1,
		Badges: models.SeedBadges(),
	}
}

func findHabit(habits []models.Habit, id string) (models.Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}
