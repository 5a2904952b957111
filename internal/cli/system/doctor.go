package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/focusflow/internal/backup"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
	"github.com/julianstephens/focusflow/internal/utils"
	"github.com/julianstephens/focusflow/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database cannot be loaded
	needsDB bool
	// warnOnly failures do not fail the command
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Data integrity", needsDB: true, run: checkDataIntegrity},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Desktop tray app", warnOnly: true, run: checkTray},
	{name: "Sync backend", warnOnly: true, run: checkSyncBackend},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false
	defer ctx.Close()

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if c.name == "Database reachable" {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	if db, ok := ctx.Storage.(*sqlite.Store); ok {
		conn := db.GetDB()
		if conn == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := conn.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	db, ok := ctx.Storage.(*sqlite.Store)
	if !ok {
		return nil
	}
	current, latest, err := db.SchemaVersion(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run 'focusflow migrate'", current, latest)
	}
	return nil
}

// checkDataIntegrity runs the validator over the loaded data
func checkDataIntegrity(ctx *cli.Context) error {
	data, _ := ctx.State.Data()
	result := validation.New().ValidateData(data)
	if !result.HasConflicts() {
		return nil
	}
	return fmt.Errorf("%d problem(s) found, first: %s; run 'focusflow validate' for details",
		len(result.Conflicts), result.Conflicts[0].Description)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Storage.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	// Habit and reminder day boundaries follow the local zone
	if _, err := utils.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("local timezone %q cannot be loaded: %w", now.Location(), err)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; secrets must come from the environment")
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	if !notifier.New().RequestPermission() {
		return fmt.Errorf("tray app is not running; alerts will only appear in focusflow")
	}
	return nil
}

func checkSyncBackend(ctx *cli.Context) error {
	if !ctx.SyncEnabled() {
		return nil
	}
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rs, err := ctx.OpenRemote(c)
	if err != nil {
		return err
	}
	defer rs.Close()
	if _, err := rs.Load(c); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}
