package models

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// DayFormat is the date-only layout used for streak math and the
// CompletedOn marker.
const DayFormat = "2006-01-02"

// DayOf returns the calendar day of t as seen in the process's local
// timezone, regardless of the location t carries. Both persistence
// backends derive completion days through this so they agree on what
// "today" means for stored instants.
func DayOf(t time.Time) string {
	return t.Local().Format(DayFormat)
}

// DefaultUserID identifies the single local user.
const DefaultUserID = "user-1"

// GameState is the aggregate root: the single source of truth the engine
// reduces over. CompletedToday is session-scoped; it only counts for the
// calendar day recorded in CompletedOn and reads as empty once the date
// rolls over.
type GameState struct {
	UserID         string     `json:"user_id"`
	Level          int        `json:"level"`
	TotalXP        int        `json:"total_xp"`
	Habits         []Habit    `json:"habits"`
	Badges         []Badge    `json:"badges"`
	CompletedToday []string   `json:"completed_today"`
	CompletedOn    string     `json:"completed_on,omitempty"`
	LastSentiment  *Sentiment `json:"last_sentiment,omitempty"`
}

// CompletedOnDay reports whether the habit was completed on the given day.
func (s GameState) CompletedOnDay(habitID string, day time.Time) bool {
	if s.CompletedOn != day.Format(DayFormat) {
		return false
	}
	for _, id := range s.CompletedToday {
		if id == habitID {
			return true
		}
	}
	return false
}

// HabitByID returns the habit with the given id, if present. Habits are
// always addressed by stable id, never by list position.
func (s GameState) HabitByID(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

func (s GameState) BadgeByID(id string) (Badge, bool) {
	for _, b := range s.Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// UserProgress is the persisted per-user summary row.
type UserProgress struct {
	Level         int        `json:"level"`
	TotalXP       int        `json:"total_xp"`
	LastSentiment *Sentiment `json:"last_sentiment,omitempty"`
}

// LevelProgress describes progress toward the next level, for display only.
type LevelProgress struct {
	Current    int     `json:"current"`
	Target     int     `json:"target"`
	Percentage float64 `json:"percentage"`
}

// CompletionRecord is one row of the append-only completion log.
type CompletionRecord struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	Sentiment   Sentiment `json:"sentiment"`
	Reflection  string    `json:"reflection,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
