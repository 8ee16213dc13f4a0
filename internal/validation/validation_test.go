package validation

import (
	"errors"
	"strings"
	"testing"

	"smarthabit/internal/models"
)

func validHabit(id, name string) models.Habit {
	return models.Habit{
		ID:        id,
		Name:      name,
		Category:  models.CategoryHealth,
		Frequency: models.FrequencyDaily,
		Effort:    models.EffortMedium,
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	return verr.Field
}

func TestValidateNewHabit_Valid(t *testing.T) {
	if err := ValidateNewHabit(validHabit("h1", "Run"), nil); err != nil {
		t.Errorf("expected valid habit, got %v", err)
	}
}

func TestValidateNewHabit_Name(t *testing.T) {
	if err := ValidateNewHabit(validHabit("h1", ""), nil); err == nil {
		t.Error("empty name must be rejected")
	} else if fieldOf(t, err) != "name" {
		t.Errorf("expected name field, got %v", err)
	}

	if err := ValidateNewHabit(validHabit("h1", "   "), nil); err == nil {
		t.Error("whitespace-only name must be rejected")
	}

	long := strings.Repeat("x", MaxNameLength+1)
	if err := ValidateNewHabit(validHabit("h1", long), nil); err == nil {
		t.Error("over-long name must be rejected")
	}

	exact := strings.Repeat("x", MaxNameLength)
	if err := ValidateNewHabit(validHabit("h1", exact), nil); err != nil {
		t.Errorf("name at the limit must be accepted, got %v", err)
	}
}

func TestValidateNewHabit_Enums(t *testing.T) {
	h := validHabit("h1", "Run")
	h.Category = "productivity"
	if err := ValidateNewHabit(h, nil); err == nil || fieldOf(t, err) != "category" {
		t.Errorf("expected category error, got %v", err)
	}

	h = validHabit("h1", "Run")
	h.Frequency = "hourly"
	if err := ValidateNewHabit(h, nil); err == nil || fieldOf(t, err) != "frequency" {
		t.Errorf("expected frequency error, got %v", err)
	}

	h = validHabit("h1", "Run")
	h.Effort = "extreme"
	if err := ValidateNewHabit(h, nil); err == nil || fieldOf(t, err) != "effort" {
		t.Errorf("expected effort error, got %v", err)
	}
}

func TestValidateNewHabit_Duplicates(t *testing.T) {
	existing := []models.Habit{validHabit("h1", "Run")}

	if err := ValidateNewHabit(validHabit("h1", "Other"), existing); err == nil || fieldOf(t, err) != "id" {
		t.Errorf("expected id error for duplicate id, got %v", err)
	}

	if err := ValidateNewHabit(validHabit("h2", "run"), existing); err == nil || fieldOf(t, err) != "name" {
		t.Errorf("duplicate name must be rejected case-insensitively, got %v", err)
	}

	if err := ValidateNewHabit(validHabit("h2", "  Run  "), existing); err == nil {
		t.Error("duplicate name must be rejected ignoring surrounding whitespace")
	}

	if err := ValidateNewHabit(validHabit("h2", "Walk"), existing); err != nil {
		t.Errorf("distinct habit must be accepted, got %v", err)
	}
}

func TestValidateSentiment(t *testing.T) {
	for _, s := range []models.Sentiment{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		if err := ValidateSentiment(s); err != nil {
			t.Errorf("sentiment %s must be valid, got %v", s, err)
		}
	}
	if err := ValidateSentiment(models.Sentiment("meh")); err == nil {
		t.Error("unknown sentiment must be rejected")
	}
	if err := ValidateSentiment(""); err == nil {
		t.Error("empty sentiment must be rejected")
	}
}
