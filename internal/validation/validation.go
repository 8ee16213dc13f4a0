package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"smarthabit/internal/models"
)

// MaxNameLength bounds habit names; longer names break the list layouts.
const MaxNameLength = 60

// Error is a rejected-input error. Inputs failing validation never reach
// the game state aggregate.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateNewHabit checks a habit before it is added. existing is the
// current habit list, used to reject duplicate names and ids.
func ValidateNewHabit(h models.Habit, existing []models.Habit) error {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		return &Error{Field: "name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return &Error{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
	}
	if !h.Category.IsValid() {
		return &Error{Field: "category", Reason: fmt.Sprintf("must be one of health, focus, learning, mindfulness (got %q)", h.Category)}
	}
	if !h.Frequency.IsValid() {
		return &Error{Field: "frequency", Reason: fmt.Sprintf("must be daily or weekly (got %q)", h.Frequency)}
	}
	if !h.Effort.IsValid() {
		return &Error{Field: "effort", Reason: fmt.Sprintf("must be low, medium, or high (got %q)", h.Effort)}
	}

	for _, other := range existing {
		if other.ID == h.ID {
			return &Error{Field: "id", Reason: fmt.Sprintf("already in use: %s", h.ID)}
		}
		if strings.EqualFold(strings.TrimSpace(other.Name), name) {
			return &Error{Field: "name", Reason: fmt.Sprintf("already in use: %s", other.Name)}
		}
	}
	return nil
}

// ValidateSentiment checks a sentiment value from user input.
func ValidateSentiment(s models.Sentiment) error {
	if !s.IsValid() {
		return &Error{Field: "sentiment", Reason: fmt.Sprintf("must be positive, neutral, or negative (got %q)", s)}
	}
	return nil
}
