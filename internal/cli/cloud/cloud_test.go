package cloud

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/remote"
	"github.com/julianstephens/focusflow/internal/storage"
)

func newTestContext(t *testing.T, rs remote.Store, device string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Device = device
	ctx := cli.NewContextWith(cfg, "", storage.NewMemoryStore())
	if rs != nil {
		ctx.Remote = rs
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestSyncDisabled(t *testing.T) {
	ctx, out := newTestContext(t, nil, "laptop")

	if err := (&SyncPushCmd{}).Run(ctx); !errors.Is(err, cli.ErrSyncDisabled) {
		t.Errorf("push: expected ErrSyncDisabled, got %v", err)
	}
	if err := (&SyncPullCmd{Yes: true}).Run(ctx); !errors.Is(err, cli.ErrSyncDisabled) {
		t.Errorf("pull: expected ErrSyncDisabled, got %v", err)
	}
	if err := (&SyncStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out.String(), "not configured") {
		t.Errorf("unexpected status output %q", out.String())
	}
}

func TestPushThenPullOnAnotherDevice(t *testing.T) {
	rs := remote.NewMemoryStore()
	laptop, out := newTestContext(t, rs, "laptop")

	if err := laptop.Open(); err != nil {
		t.Fatal(err)
	}
	laptop.State.AddTask(models.Task{Title: "Revise matrices", Category: models.CategoryNIMCET, Priority: models.PriorityHigh})
	laptop.Close()

	if err := (&SyncPushCmd{}).Run(laptop); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if !strings.Contains(out.String(), "Pushed snapshot from laptop") {
		t.Errorf("unexpected push output %q", out.String())
	}
	snap, err := rs.Load(context.Background())
	if err != nil || snap == nil || snap.Device != "laptop" {
		t.Fatalf("expected laptop snapshot, got %+v (err %v)", snap, err)
	}

	out.Reset()
	if err := (&SyncPullCmd{Yes: true}).Run(laptop); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if !strings.Contains(out.String(), "Already up to date.") {
		t.Errorf("expected the pushing device to be up to date, got %q", out.String())
	}

	desktop, deskOut := newTestContext(t, rs, "desktop")
	if err := (&SyncStatusCmd{}).Run(desktop); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(deskOut.String(), "newer snapshot from laptop") {
		t.Errorf("expected status to report the newer snapshot:\n%s", deskOut.String())
	}

	deskOut.Reset()
	if err := (&SyncPullCmd{Yes: true}).Run(desktop); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if !strings.Contains(deskOut.String(), "Loaded remote snapshot") {
		t.Errorf("unexpected pull output %q", deskOut.String())
	}

	if err := desktop.Open(); err != nil {
		t.Fatal(err)
	}
	defer desktop.Close()
	tasks := desktop.State.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Revise matrices" {
		t.Errorf("expected pulled task, got %+v", tasks)
	}
	if desktop.State.Settings().LastSyncTimestamp != snap.Timestamp {
		t.Errorf("expected last sync %d, got %d", snap.Timestamp, desktop.State.Settings().LastSyncTimestamp)
	}
}

func TestPushFailureKeepsLastSync(t *testing.T) {
	rs := remote.NewMemoryStore()
	rs.FailSave = errors.New("connection refused")
	ctx, _ := newTestContext(t, rs, "laptop")

	if err := (&SyncPushCmd{}).Run(ctx); err == nil {
		t.Fatal("expected push to fail")
	}
	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()
	if got := ctx.State.Settings().LastSyncTimestamp; got != 0 {
		t.Errorf("expected last sync to stay 0, got %d", got)
	}
}

func TestSyncAuto(t *testing.T) {
	ctx, out := newTestContext(t, remote.NewMemoryStore(), "laptop")

	for _, tt := range []struct {
		state string
		want  bool
	}{
		{"on", true},
		{"off", false},
	} {
		if err := (&SyncAutoCmd{State: tt.state}).Run(ctx); err != nil {
			t.Fatalf("auto %s failed: %v", tt.state, err)
		}
		if err := ctx.Open(); err != nil {
			t.Fatal(err)
		}
		got := ctx.State.Settings().AutoSyncEnabled
		ctx.Close()
		if got != tt.want {
			t.Errorf("auto %s: expected %v, got %v", tt.state, tt.want, got)
		}
	}
	if !strings.Contains(out.String(), "Auto sync off") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestFormatMillis(t *testing.T) {
	if got := formatMillis(0); got != "never" {
		t.Errorf("formatMillis(0) = %q", got)
	}
}
