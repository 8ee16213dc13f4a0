package engine

import (
	"testing"

	"smarthabit/internal/models"
)

func TestComputeXPGain(t *testing.T) {
	tests := []struct {
		name      string
		streak    int
		sentiment models.Sentiment
		want      int
	}{
		{"base neutral", 1, models.SentimentNeutral, 10},
		{"base negative", 3, models.SentimentNegative, 10},
		{"positive bonus", 1, models.SentimentPositive, 20},
		{"milestone at 7", 7, models.SentimentNeutral, 30},
		{"milestone at 14", 14, models.SentimentNeutral, 30},
		{"milestone plus positive", 7, models.SentimentPositive, 40},
		{"day 6 is not a milestone", 6, models.SentimentNeutral, 10},
		{"day 8 is not a milestone", 8, models.SentimentNeutral, 10},
		{"zero streak never hits milestone", 0, models.SentimentNeutral, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeXPGain(BaseCompletionXP, tt.streak, tt.sentiment)
			if got != tt.want {
				t.Errorf("ComputeXPGain(streak=%d, %s) = %d, want %d", tt.streak, tt.sentiment, got, tt.want)
			}
		})
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{250, 3},
		{400, 5},
		{-50, 1},
	}

	for _, tt := range tests {
		if got := LevelFromXP(tt.totalXP); got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.totalXP, got, tt.want)
		}
	}
}

func TestLevelFromXP_Monotonic(t *testing.T) {
	prev := LevelFromXP(0)
	for xp := 1; xp <= 1000; xp++ {
		level := LevelFromXP(xp)
		if level < prev {
			t.Fatalf("level dropped from %d to %d at %d XP", prev, level, xp)
		}
		prev = level
	}
}

func TestLevelProgress(t *testing.T) {
	p := LevelProgress(130)
	if p.Current != 30 {
		t.Errorf("expected 30 XP into the level, got %d", p.Current)
	}
	if p.Target != XPPerLevel {
		t.Errorf("expected target %d, got %d", XPPerLevel, p.Target)
	}
	if p.Percentage != 30 {
		t.Errorf("expected 30%%, got %v", p.Percentage)
	}

	if p := LevelProgress(0); p.Current != 0 || p.Percentage != 0 {
		t.Errorf("expected zero progress at 0 XP, got %+v", p)
	}
}
