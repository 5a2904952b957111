package state

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/syllabus"
)

// Hydrate replaces the in-memory state with what the persistence adapters
// hold. An empty syllabus is seeded with the NIMCET topic list and its
// chapters, and stored badges are merged over the default badge list.
// Seeds are written back. Undecodable records are logged and skipped.
func (s *Store) Hydrate() error {
	d, active, err := s.load()
	if err != nil {
		return err
	}
	topics, chapters, badges := d.Topics, d.SyllabusProgress, d.Badges

	seedTopics := len(topics) == 0
	if seedTopics {
		if topics, err = syllabus.Default(); err != nil {
			return err
		}
	}
	seedChapters := len(chapters) == 0
	if seedChapters {
		chapters = syllabus.Chapters(topics)
	}

	s.update(OriginHydrate, func(tx *Tx) {
		s.tasks = d.Tasks
		s.habits = d.Habits
		s.habitHistory = d.HabitHistory
		s.sessions = d.StudySessions
		s.tests = d.TestResults
		s.chapters = chapters
		s.topics = topics
		s.revisions = d.RevisionTasks
		s.resources = d.Resources
		s.badges = mergeBadges(badges)
		s.insights = d.AIInsights
		s.notifications = d.Notifications
		s.routine = d.DailyRoutine
		s.music = d.CustomMusicTracks
		s.cfg = d.Settings
		s.activeSession = active

		tx.touch(FieldAll)
		if seedTopics {
			for _, t := range s.topics {
				tx.writes = append(tx.writes, write{collection: storage.CollectionSyllabus, id: t.ID, value: t})
			}
		}
		if seedChapters {
			for _, c := range s.chapters {
				tx.writes = append(tx.writes, write{collection: storage.CollectionChapters, id: c.ID, value: c})
			}
		}
		if len(badges) != len(s.badges) {
			for _, b := range s.badges {
				tx.writes = append(tx.writes, write{collection: storage.CollectionAchievements, id: b.ID, value: b})
			}
		}
	})

	logger.Debug("Hydrated state", "tasks", len(d.Tasks), "habits", len(d.Habits), "topics", len(topics), "revisions", len(d.RevisionTasks))
	return nil
}

// load reads every collection and setting from the persistence adapters,
// sorted the way mutations append them. Nothing is seeded.
func (s *Store) load() (Data, *models.StudySession, error) {
	var d Data
	if s.objects == nil {
		return d, nil, fmt.Errorf("failed to hydrate: %w", storage.ErrNotInitialized)
	}

	skip := func(err error) { logger.Warn("Skipping stored record", "error", err) }

	var err error
	if d.Tasks, err = storage.GetAllAs[models.Task](s.objects, storage.CollectionTasks, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if d.Habits, err = storage.GetAllAs[models.Habit](s.objects, storage.CollectionHabits, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load habits: %w", err)
	}
	if d.HabitHistory, err = storage.GetAllAs[models.HabitCompletion](s.objects, storage.CollectionHabitHistory, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load habit history: %w", err)
	}
	if d.StudySessions, err = storage.GetAllAs[models.StudySession](s.objects, storage.CollectionPomodoroSessions, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load study sessions: %w", err)
	}
	if d.TestResults, err = storage.GetAllAs[models.TestResult](s.objects, storage.CollectionMockTests, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load test results: %w", err)
	}
	if d.SyllabusProgress, err = storage.GetAllAs[models.ChapterStatus](s.objects, storage.CollectionChapters, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load chapters: %w", err)
	}
	if d.Topics, err = storage.GetAllAs[models.TopicStatus](s.objects, storage.CollectionSyllabus, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load topics: %w", err)
	}
	if d.RevisionTasks, err = storage.GetAllAs[models.RevisionTask](s.objects, storage.CollectionRevisionTasks, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load revision tasks: %w", err)
	}
	if d.Resources, err = storage.GetAllAs[models.Resource](s.objects, storage.CollectionResources, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load resources: %w", err)
	}
	if d.Badges, err = storage.GetAllAs[models.Badge](s.objects, storage.CollectionAchievements, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load badges: %w", err)
	}
	if d.AIInsights, err = storage.GetAllAs[models.AIInsight](s.objects, storage.CollectionAIInsights, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load insights: %w", err)
	}
	if d.Notifications, err = storage.GetAllAs[models.Notification](s.objects, storage.CollectionNotifications, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	if d.DailyRoutine, err = storage.GetAllAs[models.DailyRoutineItem](s.objects, storage.CollectionDailyRoutine, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load daily routine: %w", err)
	}
	if d.CustomMusicTracks, err = storage.GetAllAs[models.CustomMusicTrack](s.objects, storage.CollectionMusicTracks, skip); err != nil {
		return d, nil, fmt.Errorf("failed to load music tracks: %w", err)
	}

	var active *models.StudySession
	stored, ok, err := storage.GetAs[models.StudySession](s.objects, storage.CollectionSettings, activeSessionID)
	if err != nil {
		logger.Warn("Ignoring stored active session", "error", err)
	} else if ok {
		active = &stored
	}

	slices.SortStableFunc(d.Tasks, func(a, b models.Task) int { return a.CreatedAt.Compare(b.CreatedAt) })
	slices.SortStableFunc(d.HabitHistory, func(a, b models.HabitCompletion) int { return a.RecordedAt.Compare(b.RecordedAt) })
	slices.SortStableFunc(d.StudySessions, func(a, b models.StudySession) int { return a.StartTime.Compare(b.StartTime) })
	slices.SortStableFunc(d.TestResults, func(a, b models.TestResult) int { return a.Date.Compare(b.Date) })
	slices.SortStableFunc(d.RevisionTasks, func(a, b models.RevisionTask) int {
		return cmp.Or(a.ScheduledFor.Compare(b.ScheduledFor), cmp.Compare(a.RevisionNumber, b.RevisionNumber))
	})
	slices.SortStableFunc(d.Resources, func(a, b models.Resource) int { return a.AddedAt.Compare(b.AddedAt) })
	slices.SortStableFunc(d.AIInsights, func(a, b models.AIInsight) int { return a.Date.Compare(b.Date) })
	slices.SortStableFunc(d.Notifications, func(a, b models.Notification) int { return a.Time.Compare(b.Time) })
	slices.SortStableFunc(d.DailyRoutine, func(a, b models.DailyRoutineItem) int { return cmp.Compare(a.ScheduledTime, b.ScheduledTime) })
	slices.SortStableFunc(d.CustomMusicTracks, func(a, b models.CustomMusicTrack) int { return a.AddedAt.Compare(b.AddedAt) })

	d.Settings = s.cfg
	if s.settings != nil {
		d.Settings = s.settings.Load()
	}
	return d, active, nil
}
