package models

// Settings is the typed view of the scalar user settings held in the
// settings store. Field names match the persisted keys.
type Settings struct {
	LastScreen         string             `json:"lastScreen"`
	UserName           string             `json:"userName"`
	Theme              string             `json:"theme"`
	AccentColor        string             `json:"accentColor"`
	MotionIntensity    string             `json:"motionIntensity"`
	PomodoroWorkTime   int                `json:"pomodoroWorkTime"`   // minutes
	PomodoroShortBreak int                `json:"pomodoroShortBreak"` // minutes
	PomodoroLongBreak  int                `json:"pomodoroLongBreak"`  // minutes
	AutoStartPomodoro  bool               `json:"autoStartPomodoro"`
	AutoLogStudyTime   bool               `json:"autoLogStudyTime"`
	PomodoroBackground PomodoroBackground `json:"pomodoroBackground"`
	SelectedMusicTrack string             `json:"selectedMusicTrack"`
	AIEnabled          bool               `json:"aiEnabled"`
	AIEngine           string             `json:"aiEngine"`
	TotalStudyTime     int                `json:"totalStudyTime"`
	TodayStudyTime     int                `json:"todayStudyTime"`
	CurrentStreak      int                `json:"currentStreak"`
	LongestStreak      int                `json:"longestStreak"`
	AutoSyncEnabled    bool               `json:"autoSyncEnabled"`
	LastSyncTimestamp  int64              `json:"lastSyncTimestamp"` // unix millis
}
