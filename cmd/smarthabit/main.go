package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"smarthabit/internal/cli"
	"smarthabit/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path (.db for SQLite, .json for the flat store)." type:"path" default:"~/.config/smarthabit/smarthabit.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize smarthabit storage."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Done  cli.DoneCmd  `cmd:"" help:"Complete a habit for today."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	} `cmd:"" help:"Manage habits."`
	Progress cli.ProgressCmd `cmd:"" help:"Show level, XP, and today's completions."`
	Badges   cli.BadgesCmd   `cmd:"" help:"Show badge collection."`
	Log      cli.LogCmd      `cmd:"" help:"Show completion history for a habit."`
	Export   cli.ExportCmd   `cmd:"" help:"Export the full game state as JSON."`
	Reset    cli.ResetCmd    `cmd:"" help:"Wipe all data and start fresh."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("smarthabit"),
		kong.Description("Gamified habit tracker with streaks, XP, and badges"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up logging: %v\n", err)
	}

	appCtx := &cli.Context{
		ConfigPath: CLI.Config,
		Debug:      CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
