package models

import "time"

// Badge IDs form a fixed set; badges are seeded locked and only ever
// transition false -> true.
const (
	BadgeStreak7     = "streak-7"
	BadgeStreak30    = "streak-30"
	BadgePerfectWeek = "perfect-week"
	BadgeLevel5      = "level-5"
	BadgeConsistent  = "consistent"
)

type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Emoji       string     `json:"emoji"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// SeedBadges returns the initial badge set, all locked.
func SeedBadges() []Badge {
	return []Badge{
		{ID: BadgeStreak7, Name: "7-Day Streak", Description: "Complete a habit 7 days in a row", Emoji: "🔥"},
		{ID: BadgeStreak30, Name: "30-Day Streak", Description: "Complete a habit 30 days in a row", Emoji: "⭐"},
		{ID: BadgePerfectWeek, Name: "Perfect Week", Description: "Keep every habit on a week-long streak", Emoji: "🎯"},
		{ID: BadgeLevel5, Name: "Level 5", Description: "Reach level 5", Emoji: "👑"},
		{ID: BadgeConsistent, Name: "Consistent", Description: "Log 20 habit completions", Emoji: "💪"},
	}
}
