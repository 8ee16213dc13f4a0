package cli

import (
	"errors"
	"fmt"

	"smarthabit/internal/engine"
)

type DoneCmd struct {
	Habit      string `arg:"" help:"Habit id or name."`
	Sentiment  string `short:"s" help:"How did it feel? (positive|neutral|negative)" default:"neutral"`
	Reflection string `short:"r" help:"Optional reflection note."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	sentiment, err := parseSentiment(c.Sentiment)
	if err != nil {
		return err
	}
	habit, err := findHabit(session.State(), c.Habit)
	if err != nil {
		return err
	}

	res, newBadges, err := session.Complete(habit.ID, sentiment, c.Reflection)

	var durability *engine.DurabilityError
	if err != nil && !errors.As(err, &durability) {
		return err
	}

	fmt.Printf("%s %s completed! +%d XP (streak %d)\n", habit.Emoji, habit.Name, res.XPGained, res.Streak)
	if res.Milestone {
		fmt.Printf("🔥 %d-day streak milestone! +%d bonus XP\n", res.Streak, engine.StreakMilestoneBonus)
	}
	if res.LevelUp() {
		fmt.Printf("🎉 Level up! You reached level %d.\n", res.LevelAfter)
	}
	for _, b := range newBadges {
		fmt.Printf("%s Badge unlocked: %s\n", b.Emoji, b.Name)
	}
	if habit.EmotionalSupport {
		fmt.Println(encouragement(sentiment))
	}

	if durability != nil {
		fmt.Printf("Warning: %v. Changes may not survive a restart.\n", durability)
	}
	return nil
}
