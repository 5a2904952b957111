// Package config loads the focusflow TOML configuration file. Secrets are
// never read from it; see the keyring package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/remote"
)

type Config struct {
	DataPath  string          `toml:"data_path"`
	Debug     bool            `toml:"debug"`
	Device    string          `toml:"device"`
	Reminders RemindersConfig `toml:"reminders"`
	Sync      SyncConfig      `toml:"sync"`
}

type RemindersConfig struct {
	PollInterval Duration `toml:"poll_interval"`
}

type SyncConfig struct {
	// Backend is "redis", "postgres" or empty for no remote
	Backend      string   `toml:"backend"`
	Debounce     Duration `toml:"debounce"`
	StartupDelay Duration `toml:"startup_delay"`
	RedisAddr    string   `toml:"redis_addr"`
	RedisDB      int      `toml:"redis_db"`
	RedisKey     string   `toml:"redis_key"`
	PostgresDSN  string   `toml:"postgres_dsn"`
	DocumentID   string   `toml:"document_id"`
}

// Duration is a time.Duration written as a Go duration string ("10s")
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file exists
func Default() Config {
	device, err := os.Hostname()
	if err != nil || device == "" {
		device = constants.AppName
	}
	return Config{
		DataPath: mustExpand(constants.DefaultDataPath),
		Device:   device,
		Reminders: RemindersConfig{
			PollInterval: Duration{constants.DefaultPollInterval},
		},
		Sync: SyncConfig{
			Debounce:     Duration{constants.DefaultSyncDebounce},
			StartupDelay: Duration{constants.DefaultSyncStartupDelay},
			RedisKey:     fmt.Sprintf("%s:%s:%s", constants.DefaultRedisPrefix, constants.DefaultCollection, constants.DefaultDocumentID),
			DocumentID:   constants.DefaultDocumentID,
		},
	}
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory when needed
func Save(path string, cfg Config) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()

	c.DataPath = strings.TrimSpace(c.DataPath)
	if c.DataPath == "" {
		c.DataPath = defaults.DataPath
	}
	c.DataPath = mustExpand(c.DataPath)

	c.Device = strings.TrimSpace(c.Device)
	if c.Device == "" {
		c.Device = defaults.Device
	}
	if c.Reminders.PollInterval.Duration <= 0 {
		c.Reminders.PollInterval = defaults.Reminders.PollInterval
	}

	c.Sync.Backend = strings.ToLower(strings.TrimSpace(c.Sync.Backend))
	if c.Sync.Debounce.Duration <= 0 {
		c.Sync.Debounce = defaults.Sync.Debounce
	}
	if c.Sync.StartupDelay.Duration <= 0 {
		c.Sync.StartupDelay = defaults.Sync.StartupDelay
	}
	if strings.TrimSpace(c.Sync.RedisKey) == "" {
		c.Sync.RedisKey = defaults.Sync.RedisKey
	}
	if strings.TrimSpace(c.Sync.DocumentID) == "" {
		c.Sync.DocumentID = defaults.Sync.DocumentID
	}
}

// Validate checks the sync backend settings
func (c Config) Validate() error {
	switch c.Sync.Backend {
	case "":
		return nil
	case constants.SyncBackendRedis:
		if strings.TrimSpace(c.Sync.RedisAddr) == "" {
			return errors.New("sync.redis_addr is required for the redis backend")
		}
		return nil
	case constants.SyncBackendPostgres:
		if c.Sync.PostgresDSN == "" {
			return nil
		}
		if err := remote.ValidateConnString(c.Sync.PostgresDSN); err != nil {
			return fmt.Errorf("invalid sync.postgres_dsn: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown sync backend %q (use %q or %q)", c.Sync.Backend, constants.SyncBackendRedis, constants.SyncBackendPostgres)
	}
}

// ConfigDir is the directory holding the config file, logs and backups
func (c Config) ConfigDir() string {
	return filepath.Dir(c.DataPath)
}

// ResolvePath expands path or returns the default config location
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(constants.DefaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
