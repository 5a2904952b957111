package storage

import (
	"encoding/json"
	"errors"
)

// Collection names a per-entity bucket in the object store
type Collection string

const (
	CollectionSettings         Collection = "settings"
	CollectionPomodoroSessions Collection = "pomodoroSessions"
	CollectionTasks            Collection = "tasks"
	CollectionHabits           Collection = "habits"
	CollectionHabitHistory     Collection = "habitHistory"
	CollectionResources        Collection = "resources"
	CollectionSyllabus         Collection = "syllabus"
	CollectionMockTests        Collection = "mockTests"
	CollectionAIInsights       Collection = "aiInsights"
	CollectionAchievements     Collection = "achievements"
	CollectionRevisionTasks    Collection = "revisionTasks"
	CollectionNotifications    Collection = "notifications"
	CollectionDailyRoutine     Collection = "dailyRoutine"
	CollectionMusicTracks      Collection = "musicTracks"
	CollectionChapters         Collection = "chapters"
)

// Collections lists every collection the object store knows about
var Collections = []Collection{
	CollectionSettings,
	CollectionPomodoroSessions,
	CollectionTasks,
	CollectionHabits,
	CollectionHabitHistory,
	CollectionResources,
	CollectionSyllabus,
	CollectionMockTests,
	CollectionAIInsights,
	CollectionAchievements,
	CollectionRevisionTasks,
	CollectionNotifications,
	CollectionDailyRoutine,
	CollectionMusicTracks,
	CollectionChapters,
}

var (
	ErrNotInitialized = errors.New("storage not initialized, run 'focusflow init' first")
	ErrEmptyID        = errors.New("object id cannot be empty")
)

// ObjectStore persists entity records as JSON documents keyed by collection and id
type ObjectStore interface {
	Get(collection Collection, id string) (json.RawMessage, bool, error)
	GetAll(collection Collection) ([]json.RawMessage, error)
	Put(collection Collection, id string, value any) error
	Delete(collection Collection, id string) error
	Clear(collection Collection) error
}

// SettingsStore is a flat key/value store for scalar settings. Values are
// opaque strings; callers decide the encoding.
type SettingsStore interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
	RemoveSetting(key string) error
	ListSettings(prefix string) (map[string]string, error)
}

// Versioner is implemented by providers that can tell when another process
// has committed changes. The version is opaque; only a change is meaningful.
type Versioner interface {
	DataVersion() (int64, error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	ObjectStore
	SettingsStore

	// Utils
	GetConfigPath() string
}
