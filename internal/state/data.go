package state

import (
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// Data is the full synchronisable snapshot of the store. The JSON shape is
// what remote snapshot stores persist.
type Data struct {
	Tasks             []models.Task             `json:"tasks"`
	Habits            []models.Habit            `json:"habits"`
	HabitHistory      []models.HabitCompletion  `json:"habitHistory"`
	StudySessions     []models.StudySession     `json:"studySessions"`
	TestResults       []models.TestResult       `json:"testResults"`
	SyllabusProgress  []models.ChapterStatus    `json:"syllabusProgress"`
	Topics            []models.TopicStatus      `json:"topics"`
	RevisionTasks     []models.RevisionTask     `json:"revisionTasks"`
	Resources         []models.Resource         `json:"resources"`
	Badges            []models.Badge            `json:"badges"`
	AIInsights        []models.AIInsight        `json:"aiInsights"`
	Notifications     []models.Notification     `json:"notifications"`
	DailyRoutine      []models.DailyRoutineItem `json:"dailyRoutine"`
	CustomMusicTracks []models.CustomMusicTrack `json:"customMusicTracks"`
	Settings          models.Settings           `json:"settings"`
}

// Data returns a snapshot of every synchronised collection and setting
// together with the revision it was taken at.
func (s *Store) Data() (Data, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataLocked(), s.rev
}

func (s *Store) dataLocked() Data {
	return Data{
		Tasks:             clone(s.tasks),
		Habits:            clone(s.habits),
		HabitHistory:      clone(s.habitHistory),
		StudySessions:     clone(s.sessions),
		TestResults:       clone(s.tests),
		SyllabusProgress:  clone(s.chapters),
		Topics:            clone(s.topics),
		RevisionTasks:     clone(s.revisions),
		Resources:         clone(s.resources),
		Badges:            clone(s.badges),
		AIInsights:        clone(s.insights),
		Notifications:     clone(s.notifications),
		DailyRoutine:      clone(s.routine),
		CustomMusicTracks: clone(s.music),
		Settings:          s.cfg,
	}
}

// ReplaceState overwrites every synchronised collection and setting with d
// as one mutation, then stamps lastSync as the last sync time. The change
// is tagged OriginRemote. A nil collection in d empties the local one.
func (s *Store) ReplaceState(d Data, lastSync int64) Change {
	return s.update(OriginRemote, func(tx *Tx) {
		s.tasks = clone(d.Tasks)
		s.habits = clone(d.Habits)
		s.habitHistory = clone(d.HabitHistory)
		s.sessions = clone(d.StudySessions)
		s.tests = clone(d.TestResults)
		s.chapters = clone(d.SyllabusProgress)
		s.topics = clone(d.Topics)
		s.revisions = clone(d.RevisionTasks)
		s.resources = clone(d.Resources)
		s.badges = mergeBadges(d.Badges)
		s.insights = clone(d.AIInsights)
		s.notifications = clone(d.Notifications)
		s.routine = clone(d.DailyRoutine)
		s.music = clone(d.CustomMusicTracks)

		replaceAll(tx, FieldTasks, storage.CollectionTasks, s.tasks, func(v models.Task) string { return v.ID })
		replaceAll(tx, FieldHabits, storage.CollectionHabits, s.habits, func(v models.Habit) string { return v.ID })
		replaceAll(tx, FieldHabitHistory, storage.CollectionHabitHistory, s.habitHistory, func(v models.HabitCompletion) string { return v.ID })
		replaceAll(tx, FieldStudySessions, storage.CollectionPomodoroSessions, s.sessions, func(v models.StudySession) string { return v.ID })
		replaceAll(tx, FieldTestResults, storage.CollectionMockTests, s.tests, func(v models.TestResult) string { return v.ID })
		replaceAll(tx, FieldChapters, storage.CollectionChapters, s.chapters, func(v models.ChapterStatus) string { return v.ID })
		replaceAll(tx, FieldTopics, storage.CollectionSyllabus, s.topics, func(v models.TopicStatus) string { return v.ID })
		replaceAll(tx, FieldRevisionTasks, storage.CollectionRevisionTasks, s.revisions, func(v models.RevisionTask) string { return v.ID })
		replaceAll(tx, FieldResources, storage.CollectionResources, s.resources, func(v models.Resource) string { return v.ID })
		replaceAll(tx, FieldBadges, storage.CollectionAchievements, s.badges, func(v models.Badge) string { return v.ID })
		replaceAll(tx, FieldAIInsights, storage.CollectionAIInsights, s.insights, func(v models.AIInsight) string { return v.ID })
		replaceAll(tx, FieldNotifications, storage.CollectionNotifications, s.notifications, func(v models.Notification) string { return v.ID })
		replaceAll(tx, FieldDailyRoutine, storage.CollectionDailyRoutine, s.routine, func(v models.DailyRoutineItem) string { return v.ID })
		replaceAll(tx, FieldMusicTracks, storage.CollectionMusicTracks, s.music, func(v models.CustomMusicTrack) string { return v.ID })

		cfg := d.Settings
		cfg.LastSyncTimestamp = lastSync
		s.cfg = cfg
		for key, value := range settingValues(cfg) {
			f := FieldSettings
			if key == constants.SettingLastSyncTimestamp {
				f = FieldLastSync
			}
			tx.setting(f, key, value)
		}
	})
}

// mergeBadges overlays stored badges onto the default list so badges added
// in newer releases appear and unknown ids are kept.
func mergeBadges(stored []models.Badge) []models.Badge {
	out := models.DefaultBadges()
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.ID] = i
	}
	for _, b := range stored {
		if i, ok := index[b.ID]; ok {
			out[i] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// settingValues maps each setting key to its value in cfg
func settingValues(cfg models.Settings) map[string]any {
	return map[string]any{
		constants.SettingLastScreen:         cfg.LastScreen,
		constants.SettingUserName:           cfg.UserName,
		constants.SettingTheme:              cfg.Theme,
		constants.SettingAccentColor:        cfg.AccentColor,
		constants.SettingMotionIntensity:    cfg.MotionIntensity,
		constants.SettingPomodoroWorkTime:   cfg.PomodoroWorkTime,
		constants.SettingPomodoroShortBreak: cfg.PomodoroShortBreak,
		constants.SettingPomodoroLongBreak:  cfg.PomodoroLongBreak,
		constants.SettingAutoStartPomodoro:  cfg.AutoStartPomodoro,
		constants.SettingAutoLogStudyTime:   cfg.AutoLogStudyTime,
		constants.SettingPomodoroBackground: cfg.PomodoroBackground,
		constants.SettingSelectedMusicTrack: cfg.SelectedMusicTrack,
		constants.SettingAIEnabled:          cfg.AIEnabled,
		constants.SettingAIEngine:           cfg.AIEngine,
		constants.SettingTotalStudyTime:     cfg.TotalStudyTime,
		constants.SettingTodayStudyTime:     cfg.TodayStudyTime,
		constants.SettingCurrentStreak:      cfg.CurrentStreak,
		constants.SettingLongestStreak:      cfg.LongestStreak,
		constants.SettingAutoSyncEnabled:    cfg.AutoSyncEnabled,
		constants.SettingLastSyncTimestamp:  cfg.LastSyncTimestamp,
	}
}
