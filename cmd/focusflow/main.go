package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/cli/backups"
	"github.com/julianstephens/focusflow/internal/cli/cloud"
	"github.com/julianstephens/focusflow/internal/cli/habits"
	"github.com/julianstephens/focusflow/internal/cli/notify"
	"github.com/julianstephens/focusflow/internal/cli/settings"
	"github.com/julianstephens/focusflow/internal/cli/study"
	"github.com/julianstephens/focusflow/internal/cli/system"
	"github.com/julianstephens/focusflow/internal/cli/tasks"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/errors"
	"github.com/julianstephens/focusflow/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr as well as the log file."`

	Init     system.InitCmd     `cmd:"" help:"Initialize focusflow storage and write a default config."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Run      system.RunCmd      `cmd:"" help:"Run the reminder engine and sync coordinator." default:"1"`

	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Mark a task completed."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits and weekly tracking."`
	Topic    study.TopicCmd       `cmd:"" help:"Track syllabus progress."`
	Revision study.RevisionCmd    `cmd:"" help:"Review spaced-repetition revisions."`
	Session  study.SessionCmd     `cmd:"" help:"Log study sessions."`
	Test     study.TestCmd        `cmd:"" help:"Record mock test results."`
	Badge    study.BadgeCmd       `cmd:"" help:"Show achievement badges."`
	Notify   notify.NotifyCmd     `cmd:"" help:"Manage the notification center."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Sync     cloud.SyncCmd        `cmd:"" help:"Synchronise with the remote snapshot store."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show which secrets are stored." default:"1"`
	} `cmd:"" help:"Manage sync credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study companion: reminders, habits, syllabus tracking and cloud sync"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	path, err := config.ResolvePath(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		errors.Fatal(fmt.Errorf("failed to load config: %w", err))
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.FormatWarning(fmt.Errorf("logging disabled: %w", err)))
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", path, "data", cfg.DataPath)

	appCtx := cli.NewContext(cfg, path)
	errors.Fatal(ctx.Run(appCtx))
}
