package engine

import (
	"time"

	"smarthabit/internal/models"
)

// NewGameState returns the seeded initial state: level 1, no XP, no habits,
// the full badge set locked.
func NewGameState(userID string) models.GameState {
	return models.GameState{
		UserID: userID,
		Level:  1,
		Badges: models.SeedBadges(),
	}
}

// CompletionResult reports what a completion event changed.
type CompletionResult struct {
	Applied     bool
	HabitID     string
	Streak      int
	Milestone   bool
	XPGained    int
	LevelBefore int
	LevelAfter  int
}

func (r CompletionResult) LevelUp() bool { return r.LevelAfter > r.LevelBefore }

// ApplyCompletion is the single entry point for completion events. It
// returns the new state and a result describing the mutation; the input
// state is never modified. A second completion of the same habit on the
// same calendar day, or an unknown habit id, leaves the state unchanged
// with Applied=false.
//
// Badge evaluation is the caller's concern: run CheckBadgeUnlocks against
// the returned state and apply unlocks via UnlockBadge.
func ApplyCompletion(s models.GameState, habitID string, sentiment models.Sentiment, today time.Time) (models.GameState, CompletionResult) {
	res := CompletionResult{HabitID: habitID, LevelBefore: s.Level, LevelAfter: s.Level}

	habit, ok := s.HabitByID(habitID)
	if !ok {
		return s, res
	}
	if s.CompletedOnDay(habitID, today) {
		return s, res
	}

	updated, ok := CompleteHabit(habit, today)
	if !ok {
		return s, res
	}

	xp := ComputeXPGain(BaseCompletionXP, updated.Streak, sentiment)
	totalXP := s.TotalXP + xp

	next := s
	next.Habits = replaceHabit(s.Habits, updated)
	next.TotalXP = totalXP
	next.Level = LevelFromXP(totalXP)
	next.CompletedToday = appendCompleted(s, habitID, today)
	next.CompletedOn = today.Format(models.DayFormat)
	next.LastSentiment = &sentiment

	res.Applied = true
	res.Streak = updated.Streak
	res.Milestone = updated.Streak > 0 && updated.Streak%StreakMilestoneInterval == 0
	res.XPGained = xp
	res.LevelAfter = next.Level
	return next, res
}

// AddXP grants XP directly and recomputes the level.
func AddXP(s models.GameState, xp int) models.GameState {
	if xp < 0 {
		return s
	}
	s.TotalXP += xp
	s.Level = LevelFromXP(s.TotalXP)
	return s
}

// AddHabit appends a habit. A duplicate id leaves the state unchanged.
func AddHabit(s models.GameState, h models.Habit) models.GameState {
	if _, exists := s.HabitByID(h.ID); exists {
		return s
	}
	habits := make([]models.Habit, len(s.Habits), len(s.Habits)+1)
	copy(habits, s.Habits)
	s.Habits = append(habits, h)
	return s
}

// RemoveHabit drops a habit by id, along with its completed-today marker.
func RemoveHabit(s models.GameState, id string) models.GameState {
	habits := make([]models.Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}
	s.Habits = habits

	done := make([]string, 0, len(s.CompletedToday))
	for _, cid := range s.CompletedToday {
		if cid != id {
			done = append(done, cid)
		}
	}
	s.CompletedToday = done
	return s
}

// UnlockBadge marks a badge unlocked at the given time. Unknown ids and
// already-unlocked badges are no-ops; UnlockedAt is set exactly once.
func UnlockBadge(s models.GameState, id string, at time.Time) models.GameState {
	badges := make([]models.Badge, len(s.Badges))
	copy(badges, s.Badges)
	for i, b := range badges {
		if b.ID != id || b.Unlocked {
			continue
		}
		b.Unlocked = true
		t := at
		b.UnlockedAt = &t
		badges[i] = b
		s.Badges = badges
		return s
	}
	return s
}

func SetSentiment(s models.GameState, sentiment models.Sentiment) models.GameState {
	s.LastSentiment = &sentiment
	return s
}

// ResetAllData restores the seeded initial state for the same user.
func ResetAllData(s models.GameState) models.GameState {
	return NewGameState(s.UserID)
}

// Rollover clears the completed-today set when the recorded day is no
// longer the current one.
func Rollover(s models.GameState, today time.Time) models.GameState {
	if s.CompletedOn == today.Format(models.DayFormat) {
		return s
	}
	s.CompletedToday = nil
	s.CompletedOn = ""
	return s
}

// HabitStreaks lists every habit's current streak, for badge evaluation.
func HabitStreaks(s models.GameState) []int {
	streaks := make([]int, len(s.Habits))
	for i, h := range s.Habits {
		streaks[i] = h.Streak
	}
	return streaks
}

func replaceHabit(habits []models.Habit, updated models.Habit) []models.Habit {
	next := make([]models.Habit, len(habits))
	copy(next, habits)
	for i, h := range next {
		if h.ID == updated.ID {
			next[i] = updated
			break
		}
	}
	return next
}

func appendCompleted(s models.GameState, habitID string, today time.Time) []string {
	var base []string
	if s.CompletedOn == today.Format(models.DayFormat) {
		base = s.CompletedToday
	}
	done := make([]string, len(base), len(base)+1)
	copy(done, base)
	return append(done, habitID)
}
