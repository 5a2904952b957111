package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/config"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Storage.GetConfigPath()
	if c.Force {
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Storage.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Storage.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized focusflow storage at: %s\n", dbPath)

	// Hydrate seeds the syllabus and badges on first run
	if err := ctx.State.Hydrate(); err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}

	path, err := config.ResolvePath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(path, ctx.Config); err != nil {
			return err
		}
		ctx.Printf("Wrote default config to: %s\n", path)
	}
	return nil
}
