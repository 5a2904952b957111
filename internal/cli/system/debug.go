package system

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/storage"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show database path."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump stored records of a collection as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Storage.GetConfigPath(),
	}
	return printJSON(ctx, output)
}

type DebugDumpCmd struct {
	Collection string `arg:"" help:"Collection to dump (tasks, habits, syllabus, revisionTasks, ...)."`
	ID         string `arg:"" optional:"" help:"Dump a single record by id."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	coll := storage.Collection(cmd.Collection)
	if !slices.Contains(storage.Collections, coll) {
		return fmt.Errorf("unknown collection: %s", cmd.Collection)
	}

	if err := ctx.Storage.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Close()

	if cmd.ID != "" {
		raw, ok, err := ctx.Storage.Get(coll, cmd.ID)
		if err != nil {
			return fmt.Errorf("failed to get record: %w", err)
		}
		if !ok {
			return fmt.Errorf("no record %q in %s", cmd.ID, coll)
		}
		return printJSON(ctx, raw)
	}

	records, err := ctx.Storage.GetAll(coll)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", coll, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return printJSON(ctx, records)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
