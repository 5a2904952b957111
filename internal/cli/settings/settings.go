package settings

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/settings"
)

type SettingsCmd struct {
	List   SettingsListCmd   `cmd:"" default:"1" help:"List current settings."`
	Get    SettingsGetCmd    `cmd:"" help:"Print one setting as JSON."`
	Set    SettingsSetCmd    `cmd:"" help:"Change one setting."`
	Reset  SettingsResetCmd  `cmd:"" help:"Restore defaults for one setting or all of them."`
	Export SettingsExportCmd `cmd:"" help:"Write every setting as a JSON object."`
	Import SettingsImportCmd `cmd:"" help:"Load settings from a JSON object written by export."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	all := ctx.Settings.All()
	width := 0
	for _, k := range settings.Keys {
		width = max(width, len(k))
	}
	ctx.Println("Current Settings:")
	for _, k := range settings.Keys {
		ctx.Printf("  %-*s  %s\n", width, k, all[k])
	}
	return nil
}

type SettingsGetCmd struct {
	Key string `arg:"" help:"Setting name."`
}

func (c *SettingsGetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	value, err := ctx.Settings.Get(c.Key)
	if err != nil {
		return err
	}
	ctx.Println(string(value))
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name."`
	Value string `arg:"" help:"New value as JSON; bare words are taken as strings."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	next, err := settings.Parse(ctx.State.Settings(), c.Key, c.Value)
	if err != nil {
		return err
	}
	if !ctx.State.ApplySetting(c.Key, next) {
		return fmt.Errorf("%w: %s", settings.ErrUnknownSetting, c.Key)
	}
	value, err := ctx.Settings.Get(c.Key)
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s = %s\n", c.Key, value)
	return nil
}

type SettingsResetCmd struct {
	Key string `arg:"" optional:"" help:"Setting to reset; omit to reset everything."`
	Yes bool   `short:"y" help:"Do not ask before resetting everything."`
}

func (c *SettingsResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	if c.Key != "" {
		if err := ctx.Settings.Remove(c.Key); err != nil {
			return err
		}
		ctx.Printf("✓ %s reset to default\n", c.Key)
		return ctx.State.Hydrate()
	}

	if !c.Yes && !cli.Confirm(ctx, "Reset every setting to its default?") {
		ctx.Println("Reset cancelled.")
		return nil
	}
	if err := ctx.Settings.ClearAll(); err != nil {
		return err
	}
	ctx.Println("✓ All settings reset to defaults")
	return ctx.State.Hydrate()
}

type SettingsExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *SettingsExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	doc, err := ctx.Settings.ExportAll()
	if err != nil {
		return err
	}
	if c.Output == "" {
		ctx.Println(doc)
		return nil
	}
	if err := os.WriteFile(c.Output, []byte(doc+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	ctx.Printf("✓ Settings exported to %s\n", c.Output)
	return nil
}

type SettingsImportCmd struct {
	File string `arg:"" help:"JSON file to import, or - for stdin."`
}

func (c *SettingsImportCmd) Run(ctx *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(ctx.In)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("settings document is empty")
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.Settings.ImportAll(string(data)); err != nil {
		return err
	}
	ctx.Println("✓ Settings imported")
	return ctx.State.Hydrate()
}
