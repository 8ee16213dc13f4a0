package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smarthabit/internal/logger"
	"smarthabit/internal/models"
	"smarthabit/internal/storage"
	"smarthabit/internal/validation"
)

// Session owns the current GameState and mediates between the pure reducers
// and the persistence adapter. There is exactly one logical writer: every
// event runs to completion here before the next is accepted, and the
// completed-today check happens synchronously before any store call.
//
// Persistence failures never roll back the in-memory state; they are logged
// and surfaced as *DurabilityError so the UI can warn and keep going.
type Session struct {
	store storage.Provider
	state models.GameState
	now   func() time.Time
}

// NewSession loads the aggregate from the store and rolls the
// completed-today marker over to the current day.
func NewSession(store storage.Provider) (*Session, error) {
	s := &Session{store: store, now: time.Now}
	state, err := store.ExportAllData()
	if err != nil {
		return nil, fmt.Errorf("load game state: %w", err)
	}
	if state.UserID == "" {
		state.UserID = models.DefaultUserID
	}
	if state.Level < 1 {
		state.Level = 1
	}
	s.state = Rollover(state, s.now())
	return s, nil
}

// State returns the latest committed snapshot.
func (s *Session) State() models.GameState {
	return Rollover(s.state, s.now())
}

// Complete applies a completion event with the given sentiment, evaluates
// badge unlocks against the new state, and persists everything. The
// returned badge list holds the ids newly unlocked by this event.
func (s *Session) Complete(habitID string, sentiment models.Sentiment, reflection string) (CompletionResult, []models.Badge, error) {
	if err := validation.ValidateSentiment(sentiment); err != nil {
		return CompletionResult{}, nil, err
	}

	today := s.now()
	state := Rollover(s.state, today)

	habit, ok := state.HabitByID(habitID)
	if !ok {
		return CompletionResult{}, nil, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}
	if state.CompletedOnDay(habitID, today) {
		return CompletionResult{}, nil, fmt.Errorf("%w: %s", ErrAlreadyCompleted, habit.Name)
	}

	next, res := ApplyCompletion(state, habitID, sentiment, today)
	if !res.Applied {
		return res, nil, fmt.Errorf("%w: %s", ErrAlreadyCompleted, habit.Name)
	}

	newBadges := s.evaluateBadges(&next, res, today)

	// Commit in memory first; the snapshot stays authoritative even when
	// the store write fails.
	s.state = next
	updated, _ := next.HabitByID(habitID)

	var firstErr *DurabilityError
	persist := func(op string, err error) {
		if err == nil {
			return
		}
		logger.Get().Warn("persist failed", "op", op, "err", err)
		if firstErr == nil {
			firstErr = &DurabilityError{Op: op, Err: err}
		}
	}

	persist("habit", s.store.UpdateHabit(updated))
	persist("completion", s.store.RecordCompletion(models.CompletionRecord{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		Sentiment:   sentiment,
		Reflection:  reflection,
		CompletedAt: today,
	}))
	persist("user xp", s.store.UpdateUserXP(next.UserID, next.TotalXP, next.Level))
	persist("sentiment", s.store.UpdateUserSentiment(next.UserID, sentiment))
	for _, b := range newBadges {
		persist("badge "+b.ID, s.store.UnlockBadge(b.ID, today))
	}

	if firstErr != nil {
		return res, newBadges, firstErr
	}
	return res, newBadges, nil
}

// evaluateBadges applies every newly satisfied badge unlock to the state
// and returns the badges that flipped.
func (s *Session) evaluateBadges(state *models.GameState, res CompletionResult, at time.Time) []models.Badge {
	ids := CheckBadgeUnlocks(BadgeInput{
		Streak:           res.Streak,
		TotalXP:          state.TotalXP,
		Level:            state.Level,
		TotalCompletions: totalCompletions(*state),
		AllHabitStreaks:  HabitStreaks(*state),
	})

	var unlocked []models.Badge
	for _, id := range ids {
		if b, ok := state.BadgeByID(id); !ok || b.Unlocked {
			continue
		}
		*state = UnlockBadge(*state, id, at)
		if b, ok := state.BadgeByID(id); ok {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// AddHabit validates and creates a habit owned by the current user.
func (s *Session) AddHabit(name, emoji string, category models.Category, frequency models.Frequency, effort models.Effort, emotionalSupport bool) (models.Habit, error) {
	h := models.Habit{
		ID:               uuid.NewString(),
		Name:             name,
		Emoji:            emoji,
		Category:         category,
		Frequency:        frequency,
		Effort:           effort,
		EmotionalSupport: emotionalSupport,
		CreatedAt:        s.now(),
	}
	if err := validation.ValidateNewHabit(h, s.state.Habits); err != nil {
		return models.Habit{}, err
	}

	s.state = AddHabit(s.state, h)
	if err := s.store.CreateHabit(h); err != nil {
		if errors.Is(err, storage.ErrConstraintViolation) {
			// The store rejected the insert outright; undo the in-memory
			// add so the two stay in agreement.
			s.state = RemoveHabit(s.state, h.ID)
			return models.Habit{}, err
		}
		logger.Get().Warn("persist failed", "op", "create habit", "err", err)
		return h, &DurabilityError{Op: "habit " + h.Name, Err: err}
	}
	return h, nil
}

// DeleteHabit removes a habit by id. Completion history goes with it
// (cascade in the structured store).
func (s *Session) DeleteHabit(id string) error {
	if _, ok := s.state.HabitByID(id); !ok {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	s.state = RemoveHabit(s.state, id)
	if err := s.store.DeleteHabit(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Get().Warn("persist failed", "op", "delete habit", "err", err)
		return &DurabilityError{Op: "delete habit", Err: err}
	}
	return nil
}

// Reset restores the seeded initial state everywhere. Irreversible.
func (s *Session) Reset() error {
	s.state = ResetAllData(s.state)
	if err := s.store.ResetDatabase(); err != nil {
		logger.Get().Warn("persist failed", "op", "reset", "err", err)
		return &DurabilityError{Op: "reset", Err: err}
	}
	return nil
}

// Export reads the full persisted state back from the store.
func (s *Session) Export() (models.GameState, error) {
	return s.store.ExportAllData()
}

// Completions returns the persisted completion log for one habit, newest
// first. The flat store keeps no log and returns an empty slice.
func (s *Session) Completions(habitID string) ([]models.CompletionRecord, error) {
	return s.store.GetCompletionsForHabit(habitID)
}

func totalCompletions(s models.GameState) int {
	total := 0
	for _, h := range s.Habits {
		total += h.TotalCompletions
	}
	return total
}
