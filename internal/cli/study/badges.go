package study

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

type BadgeCmd struct {
	Locked bool `help:"Only show badges still locked."`
}

func (c *BadgeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	ctx.State.CheckAndUnlockBadges()
	unlocked := 0
	for _, b := range ctx.State.Badges() {
		if b.Unlocked {
			unlocked++
			if c.Locked {
				continue
			}
		}
		ctx.Println(FormatBadge(b))
	}
	m := ctx.State.Metrics()
	ctx.Printf("\n%d badges unlocked · streak %d · %d pomodoros · %.1f focus hours · %d tests\n",
		unlocked, m.CurrentStreak, m.Pomodoros, m.FocusHours, m.Tests)
	return nil
}

// FormatBadge renders one badge line with its progress towards target
func FormatBadge(b models.Badge) string {
	if b.Unlocked {
		when := ""
		if b.UnlockedAt != nil {
			when = " on " + b.UnlockedAt.Local().Format(constants.DateFormat)
		}
		return fmt.Sprintf("%s %-16s ✓ unlocked%s", b.Icon, b.Title, when)
	}
	return fmt.Sprintf("%s %-16s %g/%g  %s", b.Icon, b.Title, b.Progress, b.Target, b.Description)
}
