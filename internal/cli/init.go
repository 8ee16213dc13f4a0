package cli

import (
	"fmt"

	"smarthabit/internal/storage"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	store := storage.ForPath(ctx.ConfigPath)
	if err := store.Init(); err != nil {
		return err
	}
	defer store.Close()
	fmt.Printf("Initialized smarthabit storage at: %s\n", store.GetConfigPath())
	return nil
}
