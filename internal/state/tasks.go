package state

import (
	"slices"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// AddTask assigns an id and createdAt, fills empty category/priority
// defaults and appends the task.
func (s *Store) AddTask(t models.Task) models.Task {
	s.update(OriginLocal, func(tx *Tx) {
		t.ID = tx.NewID()
		t.CreatedAt = tx.now
		if t.Category == "" {
			t.Category = models.CategoryPersonal
		}
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		}
		if !t.Completed {
			t.CompletedAt = nil
		} else if t.CompletedAt == nil {
			ts := tx.now
			t.CompletedAt = &ts
		}
		s.tasks = append(s.tasks, t)
		tx.put(FieldTasks, storage.CollectionTasks, t.ID, t)
	})
	return t
}

// UpdateTask merges p into the task with the given id. Unknown ids are ignored.
func (s *Store) UpdateTask(id string, p models.TaskPatch) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
		if i < 0 {
			return
		}
		p.Apply(&s.tasks[i], tx.now)
		tx.put(FieldTasks, storage.CollectionTasks, id, s.tasks[i])
	})
}

// CompleteTask marks the task done, stamping completedAt
func (s *Store) CompleteTask(id string) {
	done := true
	s.UpdateTask(id, models.TaskPatch{Completed: &done})
}

// DeleteTask removes the task; deleting an unknown id is a no-op
func (s *Store) DeleteTask(id string) {
	s.update(OriginLocal, func(tx *Tx) {
		n := len(s.tasks)
		s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
		if len(s.tasks) != n {
			tx.del(FieldTasks, storage.CollectionTasks, id)
		}
	})
}

// SetTasks replaces the whole task collection
func (s *Store) SetTasks(tasks []models.Task) {
	s.update(OriginLocal, func(tx *Tx) {
		s.tasks = clone(tasks)
		replaceAll(tx, FieldTasks, storage.CollectionTasks, s.tasks, func(t models.Task) string { return t.ID })
	})
}

func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.tasks)
}

func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}
