package cloud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/cloudsync"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
)

type SyncCmd struct {
	Status SyncStatusCmd `cmd:"" default:"1" help:"Show sync configuration and the remote snapshot."`
	Push   SyncPushCmd   `cmd:"" help:"Upload the local state, replacing the remote snapshot."`
	Pull   SyncPullCmd   `cmd:"" help:"Load a newer remote snapshot after confirmation."`
	Auto   SyncAutoCmd   `cmd:"" help:"Turn automatic sync on or off."`
}

// session opens the local state and the remote and returns a coordinator
// over both. The returned cleanup closes them.
func session(ctx *cli.Context) (context.Context, *cloudsync.Coordinator, func(), error) {
	if !ctx.SyncEnabled() {
		return nil, nil, nil, cli.ErrSyncDisabled
	}
	if err := ctx.Open(); err != nil {
		return nil, nil, nil, err
	}
	callCtx, cancel := context.WithTimeout(context.Background(), constants.SyncCommandTimeout)
	rs, err := ctx.OpenRemote(callCtx)
	if err != nil {
		cancel()
		ctx.Close()
		return nil, nil, nil, err
	}
	coord := cloudsync.New(ctx.State, rs, cloudsync.Options{Device: ctx.Config.Device})
	cleanup := func() {
		if err := rs.Close(); err != nil {
			logger.Warn("Failed to close remote", "error", err)
		}
		cancel()
		ctx.Close()
	}
	return callCtx, coord, cleanup, nil
}

type SyncPushCmd struct{}

func (c *SyncPushCmd) Run(ctx *cli.Context) error {
	callCtx, coord, cleanup, err := session(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := coord.Push(callCtx); err != nil {
		return err
	}
	ctx.Printf("✓ Pushed snapshot from %s at %s\n", ctx.Config.Device, formatMillis(coord.Status().LastSync))
	return nil
}

type SyncPullCmd struct {
	Yes bool `short:"y" help:"Load the update without asking."`
}

func (c *SyncPullCmd) Run(ctx *cli.Context) error {
	callCtx, coord, cleanup, err := session(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	offer, err := coord.Fetch(callCtx)
	if err != nil {
		return err
	}
	if offer == nil {
		ctx.Println("Already up to date.")
		return nil
	}

	ctx.Printf("A newer version of your data is available (from %s, %s).\n", offer.Device, formatMillis(offer.Timestamp))
	if !c.Yes {
		accepted, err := confirmOffer(*offer)
		if err != nil {
			return err
		}
		if !accepted {
			ctx.Println("Update dismissed. Local data was not changed.")
			return nil
		}
	}
	coord.Apply(*offer)
	ctx.Println("✓ Loaded remote snapshot")
	return nil
}

func confirmOffer(offer cloudsync.Offer) (bool, error) {
	accepted := false
	err := huh.NewConfirm().
		Title("A newer version of your data is available").
		Description(fmt.Sprintf("Saved by %s at %s. Loading it replaces your local data.", offer.Device, formatMillis(offer.Timestamp))).
		Affirmative("Load Update").
		Negative("Dismiss").
		Value(&accepted).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return accepted, err
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *cli.Context) error {
	if !ctx.SyncEnabled() {
		ctx.Println("Sync: not configured")
		ctx.Println("Set [sync] backend = \"redis\" or \"postgres\" in the config file to enable it.")
		return nil
	}
	callCtx, coord, cleanup, err := session(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	st := coord.Status()
	backend := ctx.Config.Sync.Backend
	if backend == "" {
		backend = "custom"
	}
	ctx.Printf("Backend:    %s\n", backend)
	ctx.Printf("Device:     %s\n", ctx.Config.Device)
	ctx.Printf("Auto sync:  %s\n", onOff(st.AutoSync))
	ctx.Printf("Last sync:  %s\n", formatMillis(st.LastSync))

	offer, err := coord.Fetch(callCtx)
	switch {
	case err != nil:
		ctx.Printf("Remote:     unreachable (%v)\n", err)
	case offer != nil:
		ctx.Printf("Remote:     newer snapshot from %s at %s; run 'focusflow sync pull'\n", offer.Device, formatMillis(offer.Timestamp))
	default:
		ctx.Println("Remote:     up to date")
	}
	return nil
}

type SyncAutoCmd struct {
	State string `arg:"" enum:"on,off" help:"on or off."`
}

func (c *SyncAutoCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	enabled := c.State == "on"
	ctx.State.SetAutoSyncEnabled(enabled)
	ctx.Printf("✓ Auto sync %s\n", onOff(enabled))
	if enabled && !ctx.SyncEnabled() {
		ctx.Println("  Note: no sync backend is configured yet.")
	}
	return nil
}

func formatMillis(ms int64) string {
	if ms <= 0 {
		return "never"
	}
	return time.UnixMilli(ms).Local().Format(constants.DateFormat + " " + constants.TimeFormat + ":05")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
