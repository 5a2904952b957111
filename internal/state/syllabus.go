package state

import (
	"slices"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// AddTopic assigns an id and appends the topic
func (s *Store) AddTopic(t models.TopicStatus) models.TopicStatus {
	s.update(OriginLocal, func(tx *Tx) {
		t.ID = tx.NewID()
		if t.Status == "" {
			t.Status = models.ProgressNotStarted
		}
		s.topics = append(s.topics, t)
		tx.put(FieldTopics, storage.CollectionSyllabus, t.ID, t)
	})
	return t
}

// UpdateTopicStatus sets the topic's status. Every transition into Revised,
// repeated ones included, emits a TopicRevised event within the same
// mutation. Unknown ids are ignored.
func (s *Store) UpdateTopicStatus(id string, status models.Progress) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.topics, func(t models.TopicStatus) bool { return t.ID == id })
		if i < 0 {
			return
		}
		s.topics[i].Status = status
		tx.put(FieldTopics, storage.CollectionSyllabus, id, s.topics[i])

		if status == models.ProgressRevised {
			tx.emit(TopicRevised{Topic: s.topics[i], At: tx.now})
		}
	})
}

func (s *Store) SetTopics(topics []models.TopicStatus) {
	s.update(OriginLocal, func(tx *Tx) {
		s.topics = clone(topics)
		replaceAll(tx, FieldTopics, storage.CollectionSyllabus, s.topics, func(t models.TopicStatus) string { return t.ID })
	})
}

func (s *Store) Topics() []models.TopicStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.topics)
}

func (s *Store) Topic(id string) (models.TopicStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.topics, func(t models.TopicStatus) bool { return t.ID == id })
	if i < 0 {
		return models.TopicStatus{}, false
	}
	return s.topics[i], true
}

// UpdateChapterStatus sets a chapter's status; it has no derived effects
func (s *Store) UpdateChapterStatus(id string, status models.Progress) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.chapters, func(c models.ChapterStatus) bool { return c.ID == id })
		if i < 0 {
			return
		}
		s.chapters[i].Status = status
		tx.put(FieldChapters, storage.CollectionChapters, id, s.chapters[i])
	})
}

func (s *Store) SetSyllabusProgress(chapters []models.ChapterStatus) {
	s.update(OriginLocal, func(tx *Tx) {
		s.chapters = clone(chapters)
		replaceAll(tx, FieldChapters, storage.CollectionChapters, s.chapters, func(c models.ChapterStatus) string { return c.ID })
	})
}

func (s *Store) SyllabusProgress() []models.ChapterStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.chapters)
}

// SyllabusCompletion returns the percentage of topics marked Revised
func (s *Store) SyllabusCompletion() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.topics) == 0 {
		return 0
	}
	done := 0
	for _, t := range s.topics {
		if t.Status == models.ProgressRevised {
			done++
		}
	}
	return float64(done) / float64(len(s.topics)) * 100
}
