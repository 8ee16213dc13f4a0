package engine

import "smarthabit/internal/models"

const (
	// BaseCompletionXP is awarded for any habit completion.
	BaseCompletionXP = 10

	// StreakMilestoneInterval is the streak length at which the milestone
	// bonus repeats (7, 14, 21, ...).
	StreakMilestoneInterval = 7

	// StreakMilestoneBonus is the extra XP on each streak milestone.
	StreakMilestoneBonus = 20

	// PositiveSentimentBonus rewards a positive check-in. Neutral and
	// negative sentiments add nothing; there is never a penalty.
	PositiveSentimentBonus = 10

	// XPPerLevel is the flat XP cost of each level.
	XPPerLevel = 100
)

// ComputeXPGain returns the XP awarded for a completion, given the habit's
// streak after the transition and the sentiment attached to the event.
func ComputeXPGain(baseXP, streak int, sentiment models.Sentiment) int {
	xp := baseXP
	if streak > 0 && streak%StreakMilestoneInterval == 0 {
		xp += StreakMilestoneBonus
	}
	if sentiment == models.SentimentPositive {
		xp += PositiveSentimentBonus
	}
	return xp
}

// LevelFromXP returns the level for a total XP amount. Level 1 is the floor.
func LevelFromXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// LevelProgress returns progress toward the next level, for display only.
func LevelProgress(totalXP int) models.LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := LevelFromXP(totalXP)
	current := totalXP - (level-1)*XPPerLevel
	pct := float64(current) / float64(XPPerLevel) * 100
	if pct > 100 {
		pct = 100
	}
	return models.LevelProgress{
		Current:    current,
		Target:     XPPerLevel,
		Percentage: pct,
	}
}
