package constants

import "time"

const (
	AppName            = "focusflow"
	DefaultConfigDir   = "~/.config/focusflow"
	DefaultConfigPath  = "~/.config/focusflow/config.toml"
	DefaultDataPath    = "~/.config/focusflow/focusflow.db"
	Version            = "v0.3.0"
	SettingsKeyPrefix  = "focusflow_"
	DefaultDocumentID  = "default_user_data"
	DefaultCollection  = "user_data"
	DefaultRedisPrefix = "focusflow"

	// Keyring users for remote snapshot store secrets
	KeyringRedisPassword = "redis-password"
	KeyringPostgresDSN   = "postgres-dsn"

	// Environment fallbacks for secrets
	EnvRedisPassword = "FOCUSFLOW_REDIS_PASSWORD"
	EnvPostgresDSN   = "FOCUSFLOW_POSTGRES_DSN"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "focusflow-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "focusflow-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.focusflow"
	TrayExecutablePrefix   = "focusflow-tray"

	// Reminder engine
	DefaultPollInterval = 10 * time.Second

	// Sync coordinator
	DefaultSyncDebounce     = 5 * time.Second
	DefaultSyncStartupDelay = 1500 * time.Millisecond
	SyncBackendRedis        = "redis"
	SyncBackendPostgres     = "postgres"
	SyncCommandTimeout      = 30 * time.Second
)
