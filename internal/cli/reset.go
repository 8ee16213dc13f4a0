package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	if !c.Force {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Reset all data?").
			Description("Habits, XP, badges, and completion history will be wiped. This cannot be undone.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := session.Reset(); err != nil {
		return err
	}
	fmt.Println("All data reset. Fresh start!")
	return nil
}
