package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/julianstephens/focusflow/internal/backup"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/remote"
	"github.com/julianstephens/focusflow/internal/settings"
	"github.com/julianstephens/focusflow/internal/state"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
)

// ErrSyncDisabled is returned by sync commands when no backend is configured
var ErrSyncDisabled = errors.New("sync is not configured; set [sync] backend in the config file")

// Context is the composition root handed to every command's Run method
type Context struct {
	Config     config.Config
	ConfigPath string
	Storage    storage.Provider
	Settings   *settings.Service
	State      *state.Store
	Out        io.Writer
	In         io.Reader

	// Remote, when set, is returned by OpenRemote instead of dialing the
	// configured backend
	Remote remote.Store

	versionMu   sync.Mutex
	dataVersion int64
}

// NewContext wires the sqlite persistence adapter, settings service and
// state store for cfg. Nothing is opened until Open.
func NewContext(cfg config.Config, configPath string) *Context {
	db := sqlite.NewStore(cfg.DataPath)
	return NewContextWith(cfg, configPath, db)
}

// NewContextWith is NewContext over an existing persistence adapter
func NewContextWith(cfg config.Config, configPath string, db storage.Provider) *Context {
	svc := settings.New(db)
	return &Context{
		Config:     cfg,
		ConfigPath: configPath,
		Storage:    db,
		Settings:   svc,
		State:      state.New(state.Options{Objects: db, Settings: svc}),
		Out:        os.Stdout,
		In:         os.Stdin,
	}
}

// Open loads the database and hydrates the state store
func (c *Context) Open() error {
	if err := c.Storage.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if err := c.State.Hydrate(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if v, ok := c.Storage.(storage.Versioner); ok {
		version, err := v.DataVersion()
		if err != nil {
			return fmt.Errorf("failed to read data version: %w", err)
		}
		c.versionMu.Lock()
		c.dataVersion = version
		c.versionMu.Unlock()
	}
	return nil
}

// Refresh reloads the state store when another process has committed to
// the database since Open or the previous Refresh. It reports whether the
// in-memory state changed. Providers that cannot detect outside commits
// are never reloaded.
func (c *Context) Refresh() (bool, error) {
	v, ok := c.Storage.(storage.Versioner)
	if !ok {
		return false, nil
	}

	c.versionMu.Lock()
	defer c.versionMu.Unlock()

	version, err := v.DataVersion()
	if err != nil {
		return false, fmt.Errorf("failed to read data version: %w", err)
	}
	if version == c.dataVersion {
		return false, nil
	}

	ch, err := c.State.Reload()
	if err != nil {
		return false, fmt.Errorf("failed to reload data: %w", err)
	}
	c.dataVersion = version
	if ch.Fields != 0 {
		logger.Debug("Reloaded state written by another process", "fields", ch.Fields)
	}
	return ch.Fields != 0, nil
}

func (c *Context) Close() {
	if err := c.Storage.Close(); err != nil {
		logger.Warn("Failed to close database", "error", err)
	}
}

// Printf writes to the command output
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.Out, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Storage.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// SyncEnabled reports whether a remote backend is configured
func (c *Context) SyncEnabled() bool {
	return c.Remote != nil || c.Config.Sync.Backend != ""
}

// OpenRemote connects to the configured snapshot backend. Secrets come from
// the OS keyring, then the environment.
func (c *Context) OpenRemote(ctx context.Context) (remote.Store, error) {
	if c.Remote != nil {
		return c.Remote, nil
	}
	sc := c.Config.Sync
	switch sc.Backend {
	case "":
		return nil, ErrSyncDisabled
	case constants.SyncBackendRedis:
		password, err := keyring.Lookup(constants.KeyringRedisPassword, constants.EnvRedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to read redis password: %w", err)
		}
		return remote.NewRedis(ctx, remote.RedisOptions{
			Addr:     sc.RedisAddr,
			Password: password,
			DB:       sc.RedisDB,
			Key:      sc.RedisKey,
		})
	case constants.SyncBackendPostgres:
		dsn, err := keyring.Lookup(constants.KeyringPostgresDSN, constants.EnvPostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to read postgres connection string: %w", err)
		}
		if dsn == "" {
			dsn = sc.PostgresDSN
		}
		if strings.TrimSpace(dsn) == "" {
			return nil, fmt.Errorf("no postgres connection string: run 'focusflow keyring set %s' or set sync.postgres_dsn", constants.KeyringPostgresDSN)
		}
		pg := remote.NewPostgres(dsn, sc.DocumentID)
		if err := pg.Open(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown sync backend %q", sc.Backend)
	}
}
