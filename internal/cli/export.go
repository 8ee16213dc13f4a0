package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to a file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	defer ctx.Close()

	state, err := session.Export()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported game state to %s\n", c.Output)
	return nil
}
