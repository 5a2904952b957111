package state

import (
	"slices"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/utils"
)

// AddHabit assigns an id and starts the habit with an all-false week
func (s *Store) AddHabit(h models.Habit) models.Habit {
	s.update(OriginLocal, func(tx *Tx) {
		h.ID = tx.NewID()
		h.WeeklyHistory = [models.DaysPerWeek]bool{}
		if h.Streak < 0 {
			h.Streak = 0
		}
		s.habits = append(s.habits, h)
		tx.put(FieldHabits, storage.CollectionHabits, h.ID, h)
	})
	return h
}

func (s *Store) UpdateHabit(id string, p models.HabitPatch) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
		if i < 0 {
			return
		}
		p.Apply(&s.habits[i])
		tx.put(FieldHabits, storage.CollectionHabits, id, s.habits[i])
	})
}

func (s *Store) DeleteHabit(id string) {
	s.update(OriginLocal, func(tx *Tx) {
		n := len(s.habits)
		s.habits = slices.DeleteFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
		if len(s.habits) != n {
			tx.del(FieldHabits, storage.CollectionHabits, id)
		}
	})
}

// ToggleHabitDay flips one day of the habit's week and records the toggle
// in the habit history. Out-of-range day indexes are ignored. The streak is
// not touched.
func (s *Store) ToggleHabitDay(id string, dayIndex int) {
	if dayIndex < 0 || dayIndex >= models.DaysPerWeek {
		return
	}
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
		if i < 0 {
			return
		}
		h := &s.habits[i]
		h.WeeklyHistory[dayIndex] = !h.WeeklyHistory[dayIndex]
		if h.WeeklyHistory[dayIndex] && dayIndex == utils.DayIndex(tx.now) {
			ts := tx.now
			h.LastCompleted = &ts
		}
		tx.put(FieldHabits, storage.CollectionHabits, id, *h)

		entry := models.HabitCompletion{
			ID:         tx.NewID(),
			HabitID:    id,
			Date:       utils.DateKey(dayOf(tx.now, dayIndex)),
			DayIndex:   dayIndex,
			Done:       h.WeeklyHistory[dayIndex],
			RecordedAt: tx.now,
		}
		s.habitHistory = append(s.habitHistory, entry)
		tx.put(FieldHabitHistory, storage.CollectionHabitHistory, entry.ID, entry)
	})
}

func (s *Store) SetHabits(habits []models.Habit) {
	s.update(OriginLocal, func(tx *Tx) {
		s.habits = clone(habits)
		replaceAll(tx, FieldHabits, storage.CollectionHabits, s.habits, func(h models.Habit) string { return h.ID })
	})
}

func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.habits)
}

func (s *Store) Habit(id string) (models.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
	if i < 0 {
		return models.Habit{}, false
	}
	return s.habits[i], true
}

// HabitHistory returns the recorded toggles, oldest first
func (s *Store) HabitHistory() []models.HabitCompletion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.habitHistory)
}

// dayOf returns the date of weekday dayIndex in the Sunday-first week containing t
func dayOf(t time.Time, dayIndex int) time.Time {
	return t.AddDate(0, 0, dayIndex-utils.DayIndex(t))
}
