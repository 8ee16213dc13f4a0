package engine

import "smarthabit/internal/models"

// BadgeInput is the state snapshot badge conditions are evaluated against.
type BadgeInput struct {
	Streak           int
	TotalXP          int
	Level            int
	TotalCompletions int
	AllHabitStreaks  []int
}

// CheckBadgeUnlocks returns the ids of every badge whose unlock condition
// holds for the given snapshot. It does not mutate anything; the caller
// applies the unlocks, and unlocking an already-unlocked badge is a no-op.
func CheckBadgeUnlocks(in BadgeInput) []string {
	var ids []string

	if in.Streak >= 7 {
		ids = append(ids, models.BadgeStreak7)
	}
	if in.Streak >= 30 {
		ids = append(ids, models.BadgeStreak30)
	}
	if perfectWeek(in.AllHabitStreaks) {
		ids = append(ids, models.BadgePerfectWeek)
	}
	if in.Level >= 5 {
		ids = append(ids, models.BadgeLevel5)
	}
	if in.TotalCompletions >= 20 {
		ids = append(ids, models.BadgeConsistent)
	}

	return ids
}

// perfectWeek holds when every active habit has sustained a full week.
// An empty habit list never qualifies.
func perfectWeek(streaks []int) bool {
	if len(streaks) == 0 {
		return false
	}
	for _, s := range streaks {
		if s < 7 {
			return false
		}
	}
	return true
}
