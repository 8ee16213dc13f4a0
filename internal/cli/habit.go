package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"smarthabit/internal/models"
)

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Emoji     string `short:"e" help:"Emoji shown next to the habit." default:"✨"`
	Category  string `short:"c" help:"Category (health|focus|learning|mindfulness)." default:"health"`
	Frequency string `short:"f" help:"Frequency (daily|weekly)." default:"daily"`
	Effort    string `short:"E" help:"Effort level (low|medium|high)." default:"medium"`
	NoSupport bool   `help:"Disable emotional support messages for this habit."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	habit, err := session.AddHabit(
		c.Name, c.Emoji,
		models.Category(c.Category),
		models.Frequency(c.Frequency),
		models.Effort(c.Effort),
		!c.NoSupport,
	)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s %s (ID: %s)\n", habit.Emoji, habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	state := session.State()
	if len(state.Habits) == 0 {
		fmt.Println("No habits yet. Add one with 'smarthabit habit add'.")
		return nil
	}

	fmt.Println("Habits:")
	for _, h := range state.Habits {
		mark := " "
		if state.CompletedOnDay(h.ID, nowFunc()) {
			mark = "✓"
		}
		fmt.Printf("  [%s] %s %s · streak %d (best %d), %d completions\n",
			mark, h.Emoji, h.Name, h.Streak, h.BestStreak, h.TotalCompletions)
		if h.LastCompleted != nil {
			fmt.Printf("      last completed %s\n", humanize.Time(*h.LastCompleted))
		}
		fmt.Printf("      %s · %s · %s effort · id %s\n", h.Category, h.Frequency, h.Effort, h.ID)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	habit, err := findHabit(session.State(), c.Habit)
	if err != nil {
		return err
	}
	if err := session.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
