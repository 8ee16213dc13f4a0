package engine

import (
	"time"

	"smarthabit/internal/models"
)

// DaysBetween returns the number of calendar days from a to b, ignoring the
// time of day. Both instants are evaluated in b's timezone: b is the
// caller's clock, while a may carry UTC from the store.
// Completing at 23:59 and again at 00:01 is one day apart.
func DaysBetween(a, b time.Time) int {
	a = a.In(b.Location())
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// CompleteHabit applies the streak transition for a completion on the given
// day. It is a pure function of (habit, today); ok is false when the habit
// was already completed today, in which case the habit is returned unchanged.
//
// Streak rules, keyed on whole calendar days since the last completion:
// never completed -> 1; yesterday -> streak+1; two or more days ago -> 1.
// A non-positive delta (same day, or a clock stepped backwards) rejects the
// completion; it never resets the streak.
func CompleteHabit(h models.Habit, today time.Time) (models.Habit, bool) {
	switch {
	case h.LastCompleted == nil:
		h.Streak = 1
	default:
		switch delta := DaysBetween(*h.LastCompleted, today); {
		case delta <= 0:
			return h, false
		case delta == 1:
			h.Streak++
		default:
			h.Streak = 1
		}
	}

	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}
	h.TotalCompletions++
	completed := today
	h.LastCompleted = &completed
	return h, true
}
