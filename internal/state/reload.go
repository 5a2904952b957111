package state

import (
	"bytes"
	"encoding/json"
)

// Reload re-reads the persistence adapters and adopts every collection and
// setting that differs from memory, as one mutation tagged OriginExternal.
// The change mask names only what differed; when nothing did, no mutation
// is committed. Nothing is written back and nothing is seeded, so an empty
// stored syllabus leaves the in-memory one alone.
func (s *Store) Reload() (Change, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	d, active, err := s.load()
	if err != nil {
		return Change{}, err
	}
	d.Badges = mergeBadges(d.Badges)

	return s.updateLocked(OriginExternal, func(tx *Tx) {
		adopt(tx, FieldTasks, &s.tasks, d.Tasks)
		adopt(tx, FieldHabits, &s.habits, d.Habits)
		adopt(tx, FieldHabitHistory, &s.habitHistory, d.HabitHistory)
		adopt(tx, FieldStudySessions, &s.sessions, d.StudySessions)
		adopt(tx, FieldTestResults, &s.tests, d.TestResults)
		adopt(tx, FieldRevisionTasks, &s.revisions, d.RevisionTasks)
		adopt(tx, FieldResources, &s.resources, d.Resources)
		adopt(tx, FieldBadges, &s.badges, d.Badges)
		adopt(tx, FieldAIInsights, &s.insights, d.AIInsights)
		adopt(tx, FieldNotifications, &s.notifications, d.Notifications)
		adopt(tx, FieldDailyRoutine, &s.routine, d.DailyRoutine)
		adopt(tx, FieldMusicTracks, &s.music, d.CustomMusicTracks)
		if len(d.Topics) > 0 {
			adopt(tx, FieldTopics, &s.topics, d.Topics)
		}
		if len(d.SyllabusProgress) > 0 {
			adopt(tx, FieldChapters, &s.chapters, d.SyllabusProgress)
		}

		if !sameJSON(s.activeSession, active) {
			s.activeSession = active
			tx.touch(FieldActiveSession)
		}

		// lastSync is reported on its own so a peer's sync stamp reads as an echo
		cfg := d.Settings
		if cfg.LastSyncTimestamp != s.cfg.LastSyncTimestamp {
			tx.touch(FieldLastSync)
		}
		rest := cfg
		rest.LastSyncTimestamp = s.cfg.LastSyncTimestamp
		if !sameJSON(rest, s.cfg) {
			tx.touch(FieldSettings)
		}
		s.cfg = cfg
	}), nil
}

// adopt replaces *cur with next when their encodings differ
func adopt[T any](tx *Tx, f Field, cur *[]T, next []T) {
	if len(*cur) == 0 && len(next) == 0 {
		return
	}
	if sameJSON(*cur, next) {
		return
	}
	*cur = next
	tx.touch(f)
}

func sameJSON(a, b any) bool {
	x, errA := json.Marshal(a)
	y, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(x, y)
}
