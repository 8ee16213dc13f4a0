package models

import "time"

type Category string

const (
	CategoryHealth      Category = "health"
	CategoryFocus       Category = "focus"
	CategoryLearning    Category = "learning"
	CategoryMindfulness Category = "mindfulness"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryFocus, CategoryLearning, CategoryMindfulness:
		return true
	default:
		return false
	}
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

func (e Effort) IsValid() bool {
	switch e {
	case EffortLow, EffortMedium, EffortHigh:
		return true
	default:
		return false
	}
}

// Habit represents a recurring practice the user is building. Streak counts
// consecutive-day completions; BestStreak never drops below Streak.
type Habit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Emoji            string     `json:"emoji"`
	Category         Category   `json:"category"`
	Frequency        Frequency  `json:"frequency"`
	Effort           Effort     `json:"effort"`
	Streak           int        `json:"streak"`
	BestStreak       int        `json:"best_streak"`
	LastCompleted    *time.Time `json:"last_completed,omitempty"`
	TotalCompletions int        `json:"total_completions"`
	EmotionalSupport bool       `json:"emotional_support"`
	CreatedAt        time.Time  `json:"created_at"`
}
