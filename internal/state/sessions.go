package state

import (
	"slices"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

const activeSessionID = "activeSession"

// AddStudySession assigns an id and, when unset, a start time of now
func (s *Store) AddStudySession(sess models.StudySession) models.StudySession {
	s.update(OriginLocal, func(tx *Tx) {
		sess.ID = tx.NewID()
		if sess.StartTime.IsZero() {
			sess.StartTime = tx.now
		}
		if sess.Duration < 0 {
			sess.Duration = 0
		}
		if sess.Type == "" {
			sess.Type = models.SessionFocus
		}
		s.sessions = append(s.sessions, sess)
		tx.put(FieldStudySessions, storage.CollectionPomodoroSessions, sess.ID, sess)
	})
	return sess
}

func (s *Store) UpdateStudySession(id string, p models.StudySessionPatch) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.sessions, func(x models.StudySession) bool { return x.ID == id })
		if i < 0 {
			return
		}
		p.Apply(&s.sessions[i])
		tx.put(FieldStudySessions, storage.CollectionPomodoroSessions, id, s.sessions[i])
	})
}

func (s *Store) SetStudySessions(sessions []models.StudySession) {
	s.update(OriginLocal, func(tx *Tx) {
		s.sessions = clone(sessions)
		replaceAll(tx, FieldStudySessions, storage.CollectionPomodoroSessions, s.sessions, func(x models.StudySession) string { return x.ID })
	})
}

func (s *Store) StudySessions() []models.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.sessions)
}

// SetActiveSession records the running pomodoro, or clears it when sess is nil
func (s *Store) SetActiveSession(sess *models.StudySession) {
	s.update(OriginLocal, func(tx *Tx) {
		if sess == nil {
			if s.activeSession == nil {
				return
			}
			s.activeSession = nil
			tx.del(FieldActiveSession, storage.CollectionSettings, activeSessionID)
			return
		}
		cp := *sess
		s.activeSession = &cp
		tx.put(FieldActiveSession, storage.CollectionSettings, activeSessionID, cp)
	})
}

func (s *Store) ActiveSession() (models.StudySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeSession == nil {
		return models.StudySession{}, false
	}
	return *s.activeSession, true
}

// AddTestResult assigns an id and appends the result. Results are immutable after.
func (s *Store) AddTestResult(r models.TestResult) models.TestResult {
	s.update(OriginLocal, func(tx *Tx) {
		r.ID = tx.NewID()
		if r.Date.IsZero() {
			r.Date = tx.now
		}
		s.tests = append(s.tests, r)
		tx.put(FieldTestResults, storage.CollectionMockTests, r.ID, r)
	})
	return r
}

func (s *Store) SetTestResults(results []models.TestResult) {
	s.update(OriginLocal, func(tx *Tx) {
		s.tests = clone(results)
		replaceAll(tx, FieldTestResults, storage.CollectionMockTests, s.tests, func(r models.TestResult) string { return r.ID })
	})
}

func (s *Store) TestResults() []models.TestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.tests)
}
