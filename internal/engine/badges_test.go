package engine

import (
	"testing"

	"smarthabit/internal/models"
)

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestCheckBadgeUnlocks_StreakBadges(t *testing.T) {
	ids := CheckBadgeUnlocks(BadgeInput{Streak: 6})
	if contains(ids, models.BadgeStreak7) {
		t.Error("streak 6 must not unlock the 7-day badge")
	}

	ids = CheckBadgeUnlocks(BadgeInput{Streak: 7})
	if !contains(ids, models.BadgeStreak7) {
		t.Error("streak 7 must unlock the 7-day badge")
	}
	if contains(ids, models.BadgeStreak30) {
		t.Error("streak 7 must not unlock the 30-day badge")
	}

	ids = CheckBadgeUnlocks(BadgeInput{Streak: 30})
	if !contains(ids, models.BadgeStreak7) || !contains(ids, models.BadgeStreak30) {
		t.Error("streak 30 must unlock both streak badges")
	}
}

func TestCheckBadgeUnlocks_Level5(t *testing.T) {
	if ids := CheckBadgeUnlocks(BadgeInput{Level: 4}); contains(ids, models.BadgeLevel5) {
		t.Error("level 4 must not unlock the level badge")
	}
	if ids := CheckBadgeUnlocks(BadgeInput{Level: 5}); !contains(ids, models.BadgeLevel5) {
		t.Error("level 5 must unlock the level badge")
	}
}

func TestCheckBadgeUnlocks_Consistent(t *testing.T) {
	if ids := CheckBadgeUnlocks(BadgeInput{TotalCompletions: 19}); contains(ids, models.BadgeConsistent) {
		t.Error("19 completions must not unlock the consistency badge")
	}
	if ids := CheckBadgeUnlocks(BadgeInput{TotalCompletions: 20}); !contains(ids, models.BadgeConsistent) {
		t.Error("20 completions must unlock the consistency badge")
	}
}

func TestCheckBadgeUnlocks_PerfectWeek(t *testing.T) {
	tests := []struct {
		name    string
		streaks []int
		want    bool
	}{
		{"no habits", nil, false},
		{"one habit short", []int{7, 9, 6}, false},
		{"all at seven", []int{7, 7, 7}, true},
		{"single long habit", []int{10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := CheckBadgeUnlocks(BadgeInput{AllHabitStreaks: tt.streaks})
			if got := contains(ids, models.BadgePerfectWeek); got != tt.want {
				t.Errorf("perfect week with streaks %v = %v, want %v", tt.streaks, got, tt.want)
			}
		})
	}
}
