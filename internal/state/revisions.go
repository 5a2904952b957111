package state

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// RevisionOffsetsDays are the spaced-repetition review offsets, in days,
// from the moment a topic is marked Revised.
var RevisionOffsetsDays = [...]int{1, 4, 7, 14, 30}

// PlanRevisions builds the review batch and the announcement for a
// TopicRevised event. It has no side effects.
func PlanRevisions(e TopicRevised, newID func() string) ([]models.RevisionTask, models.Notification) {
	tasks := make([]models.RevisionTask, 0, len(RevisionOffsetsDays))
	for i, days := range RevisionOffsetsDays {
		tasks = append(tasks, models.RevisionTask{
			ID:             newID(),
			TopicID:        e.Topic.ID,
			TopicName:      e.Topic.Topic,
			SubjectName:    e.Topic.Subject,
			ChapterName:    e.Topic.Chapter,
			ScheduledFor:   e.At.AddDate(0, 0, days),
			Status:         models.RevisionPending,
			RevisionNumber: i + 1,
		})
	}

	note := models.Notification{
		Type:     models.NotifyStudyReminder,
		Title:    "📚 Topic Completed!",
		Message:  fmt.Sprintf("Great job completing %q! Do a quick review now, then revisions are scheduled for Days 1, 4, 7, 14, and 30.", e.Topic.Topic),
		Priority: models.PriorityHigh,
		Time:     e.At,
	}
	return tasks, note
}

// ScheduleRevisions is the default TopicRevised handler. It appends the
// announcement and all five reviews inside the triggering mutation.
func ScheduleRevisions(tx *Tx, e TopicRevised) {
	tasks, note := PlanRevisions(e, tx.NewID)
	tx.AddNotification(note)
	tx.AppendRevisionTasks(tasks...)
}

// UpdateRevisionTask merges p into the revision with the given id
func (s *Store) UpdateRevisionTask(id string, p models.RevisionTaskPatch) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.revisions, func(r models.RevisionTask) bool { return r.ID == id })
		if i < 0 {
			return
		}
		p.Apply(&s.revisions[i])
		tx.put(FieldRevisionTasks, storage.CollectionRevisionTasks, id, s.revisions[i])
	})
}

// CompleteRevision marks a revision done
func (s *Store) CompleteRevision(id string) {
	done := models.RevisionDone
	s.UpdateRevisionTask(id, models.RevisionTaskPatch{Status: &done})
}

func (s *Store) SetRevisionTasks(tasks []models.RevisionTask) {
	s.update(OriginLocal, func(tx *Tx) {
		s.revisions = clone(tasks)
		replaceAll(tx, FieldRevisionTasks, storage.CollectionRevisionTasks, s.revisions, func(r models.RevisionTask) string { return r.ID })
	})
}

func (s *Store) RevisionTasks() []models.RevisionTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.revisions)
}

// DueRevisions returns the pending revisions scheduled at or before now,
// oldest first.
func (s *Store) DueRevisions(now time.Time) []models.RevisionTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RevisionTask
	for _, r := range s.revisions {
		if r.IsDue(now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out
}
