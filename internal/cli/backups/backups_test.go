package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/models"
)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.DataPath = filepath.Join(t.TempDir(), "focusflow.db")
	ctx := cli.NewContext(cfg, "")
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")

	if err := ctx.Storage.Init(); err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	if err := ctx.State.Hydrate(); err != nil {
		t.Fatalf("failed to hydrate: %v", err)
	}
	ctx.Close()
	return ctx, out
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := setupContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mgr := backupManager(ctx)
	backups, err := mgr.List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %d (err %v)", len(backups), err)
	}

	// change the live database after the backup
	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	ctx.State.AddTask(models.Task{Title: "After backup", Category: models.CategoryBCA, Priority: models.PriorityLow})
	ctx.Close()

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "restored successfully") {
		t.Errorf("unexpected restore output:\n%s", out.String())
	}

	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()
	if tasks := ctx.State.Tasks(); len(tasks) != 0 {
		t.Errorf("expected restored database without the later task, got %+v", tasks)
	}
}

func TestBackupRestoreDeclined(t *testing.T) {
	ctx, out := setupContext(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	backups, _ := backupManager(ctx).List()

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Path}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("expected cancellation, got:\n%s", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}
