package constants

const (
	// Navigation / user
	SettingLastScreen = "lastScreen"
	SettingUserName   = "userName"

	// Appearance
	SettingTheme           = "theme"
	SettingAccentColor     = "accentColor"
	SettingMotionIntensity = "motionIntensity"

	// Pomodoro
	SettingPomodoroWorkTime   = "pomodoroWorkTime"
	SettingPomodoroShortBreak = "pomodoroShortBreak"
	SettingPomodoroLongBreak  = "pomodoroLongBreak"
	SettingAutoStartPomodoro  = "autoStartPomodoro"
	SettingAutoLogStudyTime   = "autoLogStudyTime"
	SettingPomodoroBackground = "pomodoroBackground"
	SettingSelectedMusicTrack = "selectedMusicTrack"

	// AI
	SettingAIEnabled = "aiEnabled"
	SettingAIEngine  = "aiEngine"

	// Stats
	SettingTotalStudyTime = "totalStudyTime"
	SettingTodayStudyTime = "todayStudyTime"
	SettingCurrentStreak  = "currentStreak"
	SettingLongestStreak  = "longestStreak"

	// Sync
	SettingAutoSyncEnabled   = "autoSyncEnabled"
	SettingLastSyncTimestamp = "lastSyncTimestamp"

	// Default Settings Values
	DefaultLastScreen         = "dashboard"
	DefaultUserName           = "Student"
	DefaultTheme              = "system"
	DefaultAccentColor        = "default"
	DefaultMotionIntensity    = "medium"
	DefaultPomodoroWorkTime   = 25
	DefaultPomodoroShortBreak = 5
	DefaultPomodoroLongBreak  = 15
	DefaultAutoStartPomodoro  = false
	DefaultAutoLogStudyTime   = true
	DefaultSelectedMusicTrack = "none"
	DefaultAIEnabled          = true
	DefaultAIEngine           = "gemini"
	DefaultAutoSyncEnabled    = false
	DefaultBackgroundType     = "gradient"
	DefaultBackgroundValue    = "bg-gradient-to-br from-slate-900 via-slate-800 to-slate-900"
)
