// Package settings is the namespaced scalar settings store. Every value is
// JSON encoded under "focusflow_<name>" and falls back to a documented
// default when absent or unreadable.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

var ErrUnknownSetting = errors.New("unknown setting")

// Keys lists the known setting names in display order
var Keys = []string{
	constants.SettingTheme,
	constants.SettingAccentColor,
	constants.SettingMotionIntensity,
	constants.SettingPomodoroWorkTime,
	constants.SettingPomodoroShortBreak,
	constants.SettingPomodoroLongBreak,
	constants.SettingAutoStartPomodoro,
	constants.SettingAutoLogStudyTime,
	constants.SettingAIEnabled,
	constants.SettingAIEngine,
	constants.SettingLastScreen,
	constants.SettingTotalStudyTime,
	constants.SettingTodayStudyTime,
	constants.SettingCurrentStreak,
	constants.SettingLongestStreak,
	constants.SettingUserName,
	constants.SettingPomodoroBackground,
	constants.SettingSelectedMusicTrack,
	constants.SettingAutoSyncEnabled,
	constants.SettingLastSyncTimestamp,
}

// Defaults returns the value every setting takes before it is first written
func Defaults() models.Settings {
	return models.Settings{
		LastScreen:         constants.DefaultLastScreen,
		UserName:           constants.DefaultUserName,
		Theme:              constants.DefaultTheme,
		AccentColor:        constants.DefaultAccentColor,
		MotionIntensity:    constants.DefaultMotionIntensity,
		PomodoroWorkTime:   constants.DefaultPomodoroWorkTime,
		PomodoroShortBreak: constants.DefaultPomodoroShortBreak,
		PomodoroLongBreak:  constants.DefaultPomodoroLongBreak,
		AutoStartPomodoro:  constants.DefaultAutoStartPomodoro,
		AutoLogStudyTime:   constants.DefaultAutoLogStudyTime,
		PomodoroBackground: models.PomodoroBackground{
			Type:  constants.DefaultBackgroundType,
			Value: constants.DefaultBackgroundValue,
		},
		SelectedMusicTrack: constants.DefaultSelectedMusicTrack,
		AIEnabled:          constants.DefaultAIEnabled,
		AIEngine:           constants.DefaultAIEngine,
		AutoSyncEnabled:    constants.DefaultAutoSyncEnabled,
	}
}

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

func storageKey(key string) string {
	return constants.SettingsKeyPrefix + key
}

type Service struct {
	kv storage.SettingsStore
}

func New(kv storage.SettingsStore) *Service {
	return &Service{kv: kv}
}

// defaultsRaw returns every default as its JSON encoding
func defaultsRaw() map[string]json.RawMessage {
	data, _ := json.Marshal(Defaults())
	var out map[string]json.RawMessage
	_ = json.Unmarshal(data, &out)
	return out
}

// Get returns the stored JSON value of key, or its default
func (s *Service) Get(key string) (json.RawMessage, error) {
	if !known(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	value, ok, err := s.kv.GetSetting(storageKey(key))
	if err != nil {
		logger.Warn("Failed to read setting, using default", "key", key, "error", err)
	} else if ok && checkType(key, []byte(value)) == nil {
		return json.RawMessage(value), nil
	}
	return defaultsRaw()[key], nil
}

// Set encodes value as JSON and writes it under key. The value must decode
// into the setting's type.
func (s *Service) Set(key string, value any) error {
	if !known(key) {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	if err := checkType(key, data); err != nil {
		return err
	}
	return s.kv.SetSetting(storageKey(key), string(data))
}

// Parse decodes a command-line literal for key over base. Bare words that
// are not valid JSON are treated as strings.
func Parse(base models.Settings, key, literal string) (models.Settings, error) {
	if !known(key) {
		return base, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if !json.Valid([]byte(literal)) {
		encoded, _ := json.Marshal(literal)
		literal = string(encoded)
	}
	out := base
	wrapped := fmt.Sprintf(`{%q:%s}`, key, literal)
	if err := json.Unmarshal([]byte(wrapped), &out); err != nil {
		return base, fmt.Errorf("invalid value for setting %s: %w", key, err)
	}
	return out, nil
}

func checkType(key string, data []byte) error {
	var typed models.Settings
	wrapped := fmt.Sprintf(`{%q:%s}`, key, data)
	if err := json.Unmarshal([]byte(wrapped), &typed); err != nil {
		return fmt.Errorf("invalid value for setting %s: %w", key, err)
	}
	return nil
}

func (s *Service) Remove(key string) error {
	if !known(key) {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return s.kv.RemoveSetting(storageKey(key))
}

// All returns every known setting, stored values merged over defaults
func (s *Service) All() map[string]json.RawMessage {
	out := defaultsRaw()
	stored, err := s.kv.ListSettings(constants.SettingsKeyPrefix)
	if err != nil {
		logger.Warn("Failed to list settings, using defaults", "error", err)
		return out
	}
	for k, v := range stored {
		key := strings.TrimPrefix(k, constants.SettingsKeyPrefix)
		if !known(key) {
			continue
		}
		if err := checkType(key, []byte(v)); err != nil {
			logger.Warn("Ignoring unreadable setting", "key", key, "error", err)
			continue
		}
		out[key] = json.RawMessage(v)
	}
	return out
}

// Load returns the typed view of all settings
func (s *Service) Load() models.Settings {
	out := Defaults()
	data, err := json.Marshal(s.All())
	if err != nil {
		logger.Warn("Failed to encode settings", "error", err)
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("Failed to decode settings", "error", err)
		return Defaults()
	}
	return out
}

// ExportAll returns every setting as an indented JSON object
func (s *Service) ExportAll() (string, error) {
	data, err := json.MarshalIndent(s.All(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export settings: %w", err)
	}
	return string(data), nil
}

// ImportAll writes every known key of a JSON object produced by ExportAll.
// Nothing is written when the document does not parse or a value has the
// wrong type; unknown keys are skipped.
func (s *Service) ImportAll(data string) error {
	var incoming map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &incoming); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	for key, value := range incoming {
		if !known(key) {
			continue
		}
		if err := checkType(key, value); err != nil {
			return err
		}
	}

	for key, value := range incoming {
		if !known(key) {
			logger.Warn("Skipping unknown setting on import", "key", key)
			continue
		}
		if err := s.kv.SetSetting(storageKey(key), string(value)); err != nil {
			return fmt.Errorf("failed to import setting %s: %w", key, err)
		}
	}
	return nil
}

// ClearAll removes every stored setting so that defaults apply again
func (s *Service) ClearAll() error {
	for _, key := range Keys {
		if err := s.kv.RemoveSetting(storageKey(key)); err != nil {
			return fmt.Errorf("failed to clear setting %s: %w", key, err)
		}
	}
	return nil
}
