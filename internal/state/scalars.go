package state

import (
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

// setScalar applies fn to the in-memory settings and writes key through to
// the settings store in the same call. Write failures are logged only.
func (s *Store) setScalar(f Field, key string, value any, fn func(*models.Settings)) {
	s.update(OriginLocal, func(tx *Tx) {
		fn(&s.cfg)
		tx.setting(f, key, value)
	})
}

// Settings returns a copy of every scalar setting
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Store) SetCurrentScreen(screen string) {
	s.setScalar(FieldSettings, constants.SettingLastScreen, screen, func(c *models.Settings) { c.LastScreen = screen })
}

func (s *Store) SetUserName(name string) {
	s.setScalar(FieldSettings, constants.SettingUserName, name, func(c *models.Settings) { c.UserName = name })
}

func (s *Store) SetTheme(theme string) {
	s.setScalar(FieldSettings, constants.SettingTheme, theme, func(c *models.Settings) { c.Theme = theme })
}

func (s *Store) SetAccentColor(color string) {
	s.setScalar(FieldSettings, constants.SettingAccentColor, color, func(c *models.Settings) { c.AccentColor = color })
}

func (s *Store) SetMotionIntensity(level string) {
	s.setScalar(FieldSettings, constants.SettingMotionIntensity, level, func(c *models.Settings) { c.MotionIntensity = level })
}

func (s *Store) SetPomodoroWorkTime(minutes int) {
	s.setScalar(FieldSettings, constants.SettingPomodoroWorkTime, minutes, func(c *models.Settings) { c.PomodoroWorkTime = minutes })
}

func (s *Store) SetPomodoroShortBreak(minutes int) {
	s.setScalar(FieldSettings, constants.SettingPomodoroShortBreak, minutes, func(c *models.Settings) { c.PomodoroShortBreak = minutes })
}

func (s *Store) SetPomodoroLongBreak(minutes int) {
	s.setScalar(FieldSettings, constants.SettingPomodoroLongBreak, minutes, func(c *models.Settings) { c.PomodoroLongBreak = minutes })
}

func (s *Store) SetAutoStartPomodoro(enabled bool) {
	s.setScalar(FieldSettings, constants.SettingAutoStartPomodoro, enabled, func(c *models.Settings) { c.AutoStartPomodoro = enabled })
}

func (s *Store) SetAutoLogStudyTime(enabled bool) {
	s.setScalar(FieldSettings, constants.SettingAutoLogStudyTime, enabled, func(c *models.Settings) { c.AutoLogStudyTime = enabled })
}

func (s *Store) SetAIEnabled(enabled bool) {
	s.setScalar(FieldSettings, constants.SettingAIEnabled, enabled, func(c *models.Settings) { c.AIEnabled = enabled })
}

func (s *Store) SetAIEngine(engine string) {
	s.setScalar(FieldSettings, constants.SettingAIEngine, engine, func(c *models.Settings) { c.AIEngine = engine })
}

func (s *Store) SetPomodoroBackground(bg models.PomodoroBackground) {
	s.setScalar(FieldSettings, constants.SettingPomodoroBackground, bg, func(c *models.Settings) { c.PomodoroBackground = bg })
}

func (s *Store) SetSelectedMusicTrack(trackID string) {
	s.setScalar(FieldSettings, constants.SettingSelectedMusicTrack, trackID, func(c *models.Settings) { c.SelectedMusicTrack = trackID })
}

func (s *Store) SetTodayStudyTime(seconds int) {
	s.setScalar(FieldSettings, constants.SettingTodayStudyTime, seconds, func(c *models.Settings) { c.TodayStudyTime = seconds })
}

func (s *Store) SetTotalStudyTime(seconds int) {
	s.setScalar(FieldSettings, constants.SettingTotalStudyTime, seconds, func(c *models.Settings) { c.TotalStudyTime = seconds })
}

// SetCurrentStreak sets the streak and raises the longest streak when it is exceeded
func (s *Store) SetCurrentStreak(days int) {
	if days < 0 {
		days = 0
	}
	s.update(OriginLocal, func(tx *Tx) {
		s.cfg.CurrentStreak = days
		tx.setting(FieldSettings, constants.SettingCurrentStreak, days)
		if days > s.cfg.LongestStreak {
			s.cfg.LongestStreak = days
			tx.setting(FieldSettings, constants.SettingLongestStreak, days)
		}
	})
}

func (s *Store) SetAutoSyncEnabled(enabled bool) {
	s.setScalar(FieldSettings, constants.SettingAutoSyncEnabled, enabled, func(c *models.Settings) { c.AutoSyncEnabled = enabled })
}

// SetLastSyncTimestamp records the unix-millisecond time of the last
// successful sync. The change carries FieldLastSync only.
func (s *Store) SetLastSyncTimestamp(ms int64) {
	s.setScalar(FieldLastSync, constants.SettingLastSyncTimestamp, ms, func(c *models.Settings) { c.LastSyncTimestamp = ms })
}

// ApplySetting sets one setting by name from its JSON-decoded settings view,
// as used by "settings set". It reports false for unknown names.
func (s *Store) ApplySetting(key string, next models.Settings) bool {
	switch key {
	case constants.SettingLastScreen:
		s.SetCurrentScreen(next.LastScreen)
	case constants.SettingUserName:
		s.SetUserName(next.UserName)
	case constants.SettingTheme:
		s.SetTheme(next.Theme)
	case constants.SettingAccentColor:
		s.SetAccentColor(next.AccentColor)
	case constants.SettingMotionIntensity:
		s.SetMotionIntensity(next.MotionIntensity)
	case constants.SettingPomodoroWorkTime:
		s.SetPomodoroWorkTime(next.PomodoroWorkTime)
	case constants.SettingPomodoroShortBreak:
		s.SetPomodoroShortBreak(next.PomodoroShortBreak)
	case constants.SettingPomodoroLongBreak:
		s.SetPomodoroLongBreak(next.PomodoroLongBreak)
	case constants.SettingAutoStartPomodoro:
		s.SetAutoStartPomodoro(next.AutoStartPomodoro)
	case constants.SettingAutoLogStudyTime:
		s.SetAutoLogStudyTime(next.AutoLogStudyTime)
	case constants.SettingPomodoroBackground:
		s.SetPomodoroBackground(next.PomodoroBackground)
	case constants.SettingSelectedMusicTrack:
		s.SetSelectedMusicTrack(next.SelectedMusicTrack)
	case constants.SettingAIEnabled:
		s.SetAIEnabled(next.AIEnabled)
	case constants.SettingAIEngine:
		s.SetAIEngine(next.AIEngine)
	case constants.SettingTotalStudyTime:
		s.SetTotalStudyTime(next.TotalStudyTime)
	case constants.SettingTodayStudyTime:
		s.SetTodayStudyTime(next.TodayStudyTime)
	case constants.SettingCurrentStreak:
		s.SetCurrentStreak(next.CurrentStreak)
	case constants.SettingLongestStreak:
		s.update(OriginLocal, func(tx *Tx) {
			s.cfg.LongestStreak = next.LongestStreak
			tx.setting(FieldSettings, constants.SettingLongestStreak, next.LongestStreak)
		})
	case constants.SettingAutoSyncEnabled:
		s.SetAutoSyncEnabled(next.AutoSyncEnabled)
	case constants.SettingLastSyncTimestamp:
		s.SetLastSyncTimestamp(next.LastSyncTimestamp)
	default:
		return false
	}
	return true
}
