package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	state := session.State()

	fmt.Printf("Level %d\n", state.Level)
	fmt.Printf("%s\n", xpBar(state.TotalXP, 20))
	fmt.Printf("Total XP: %d\n", state.TotalXP)
	if state.LastSentiment != nil {
		fmt.Printf("Last check-in: %s\n", *state.LastSentiment)
	}

	done := 0
	for _, h := range state.Habits {
		if state.CompletedOnDay(h.ID, nowFunc()) {
			done++
		}
	}
	fmt.Printf("Today: %d/%d habits done\n", done, len(state.Habits))

	unlocked := 0
	for _, b := range state.Badges {
		if b.Unlocked {
			unlocked++
		}
	}
	fmt.Printf("Badges: %d/%d unlocked\n", unlocked, len(state.Badges))
	return nil
}

type BadgesCmd struct{}

func (c *BadgesCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	state := session.State()
	fmt.Println("Badges:")
	for _, b := range state.Badges {
		if b.Unlocked {
			when := ""
			if b.UnlockedAt != nil {
				when = " (" + humanize.Time(*b.UnlockedAt) + ")"
			}
			fmt.Printf("  %s %s%s\n      %s\n", b.Emoji, b.Name, when, b.Description)
		} else {
			fmt.Printf("  🔒 %s\n      %s\n", b.Name, b.Description)
		}
	}
	return nil
}

type LogCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Limit int    `short:"n" help:"Show at most this many entries." default:"10"`
}

func (c *LogCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	habit, err := findHabit(session.State(), c.Habit)
	if err != nil {
		return err
	}
	records, err := session.Completions(habit.ID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No completion history for %s.\n", habit.Name)
		return nil
	}
	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}

	fmt.Printf("History for %s %s:\n", habit.Emoji, habit.Name)
	for _, r := range records {
		line := fmt.Sprintf("  %s (%s)", humanize.Time(r.CompletedAt), r.Sentiment)
		if r.Reflection != "" {
			line += " · " + r.Reflection
		}
		fmt.Println(line)
	}
	return nil
}
