package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"smarthabit/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.ConfigPath)
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.ConfigPath)
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.BackupDir())
	for i, b := range backups {
		fmt.Printf("  %d. %s · %s · %s\n",
			i+1, filepath.Base(b.Path), humanize.Time(b.Timestamp), humanize.Bytes(uint64(b.Size)))
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup filename or list index."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.ConfigPath)
	backups, err := mgr.List()
	if err != nil {
		return err
	}

	path := ""
	if n, convErr := strconv.Atoi(c.Backup); convErr == nil {
		if n < 1 || n > len(backups) {
			return fmt.Errorf("backup index %d out of range (1-%d)", n, len(backups))
		}
		path = backups[n-1].Path
	} else {
		for _, b := range backups {
			if filepath.Base(b.Path) == c.Backup {
				path = b.Path
				break
			}
		}
		if path == "" {
			return fmt.Errorf("no backup named %q", c.Backup)
		}
	}

	if err := mgr.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored store from %s\n", filepath.Base(path))
	return nil
}
