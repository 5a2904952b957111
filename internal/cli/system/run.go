package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/cloudsync"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/reminder"
	"github.com/julianstephens/focusflow/internal/tui"
)

// RunCmd starts the reminder engine and, when a backend is configured, the
// sync coordinator. It blocks until interrupted or the interface is closed.
type RunCmd struct {
	TUI    bool `name:"tui" help:"Show reminders in the interactive interface."`
	NoSync bool `help:"Do not start the sync coordinator."`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	// Perform automatic backup on startup (after successful load)
	ctx.PerformAutomaticBackup()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bridge := tui.NewBridge(ctx.Out)
	var sink reminder.PromptSink = reminder.LogSink{}
	if c.TUI {
		sink = bridge
	}

	engine := reminder.New(ctx.State, reminder.Options{
		Interval: ctx.Config.Reminders.PollInterval.Duration,
		Platform: notifier.New(),
		Sink:     sink,
		Refresh: func() error {
			_, err := ctx.Refresh()
			return err
		},
	})

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return engine.Run(gctx) })

	if ctx.SyncEnabled() && !c.NoSync {
		rs, err := ctx.OpenRemote(gctx)
		if err != nil {
			logger.Warn("Sync unavailable", "backend", ctx.Config.Sync.Backend, "error", err)
			ctx.Printf("⚠ Sync unavailable: %v\n", err)
		} else {
			defer rs.Close()
			coord := cloudsync.New(ctx.State, rs, cloudsync.Options{
				Device:       ctx.Config.Device,
				Debounce:     ctx.Config.Sync.Debounce.Duration,
				StartupDelay: ctx.Config.Sync.StartupDelay.Duration,
				Confirm:      bridge.Confirm,
				Warn:         bridge.Warn,
			})
			g.Go(func() error { return coord.Run(gctx) })
		}
	}

	if c.TUI {
		g.Go(func() error {
			// Closing the interface ends the session
			defer stop()
			return tui.Run(gctx, ctx.State, bridge)
		})
	} else {
		ctx.Println("focusflow is running. Press Ctrl+C to stop.")
	}

	return g.Wait()
}
