package system

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove duplicate tasks, keeping the oldest of each group."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	data, _ := ctx.State.Data()
	result := validation.New().ValidateData(data)
	ctx.Print(result.FormatReport())
	if !result.HasConflicts() {
		return nil
	}

	if c.Fix {
		actions := validation.AutoFixDuplicateTasks(result.Conflicts, data.Tasks, func(id string) error {
			ctx.State.DeleteTask(id)
			return nil
		})
		if len(actions) == 0 {
			ctx.Println("\nNothing could be fixed automatically.")
		} else {
			ctx.Println("\nApplied fixes:")
			for _, a := range actions {
				ctx.Printf("  ✓ %s\n", a.Action)
			}
		}
		// re-check so the exit status reflects what is left
		data, _ = ctx.State.Data()
		result = validation.New().ValidateData(data)
		if !result.HasConflicts() {
			return nil
		}
	} else {
		for _, conflict := range result.Conflicts {
			if conflict.Fixable() {
				ctx.Println("\nRun with --fix to remove duplicate tasks.")
				break
			}
		}
	}
	return fmt.Errorf("%d conflict(s) remain", len(result.Conflicts))
}
