package state

import (
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
)

func TestToggleHabitDay(t *testing.T) {
	s, _, clock := newTestStore(t)
	h := s.AddHabit(models.Habit{Title: "Flashcards"})
	today := 3 // fixed clock is a Wednesday

	s.ToggleHabitDay(h.ID, today)
	got, _ := s.Habit(h.ID)
	if !got.WeeklyHistory[today] {
		t.Fatal("expected today toggled on")
	}
	if got.LastCompleted == nil || !got.LastCompleted.Equal(clock.Now()) {
		t.Errorf("expected lastCompleted stamped, got %v", got.LastCompleted)
	}

	s.ToggleHabitDay(h.ID, today)
	got, _ = s.Habit(h.ID)
	if got.WeeklyHistory[today] {
		t.Error("expected today toggled off")
	}

	history := s.HabitHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].Date != "2025-03-12" || !history[0].Done || history[1].Done {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestToggleHabitDay_PastDayKeepsLastCompleted(t *testing.T) {
	s, _, _ := newTestStore(t)
	h := s.AddHabit(models.Habit{Title: "Walk"})

	s.ToggleHabitDay(h.ID, 1)
	got, _ := s.Habit(h.ID)
	if got.LastCompleted != nil {
		t.Errorf("expected lastCompleted untouched, got %v", got.LastCompleted)
	}
	if entry := s.HabitHistory()[0]; entry.Date != "2025-03-10" {
		t.Errorf("expected Monday date, got %s", entry.Date)
	}
}

func TestToggleHabitDay_IgnoresBadIndex(t *testing.T) {
	s, _, _ := newTestStore(t)
	h := s.AddHabit(models.Habit{Title: "Sleep early"})
	rev := s.Revision()

	s.ToggleHabitDay(h.ID, 7)
	s.ToggleHabitDay(h.ID, -1)
	s.ToggleHabitDay("missing", 2)

	if s.Revision() != rev {
		t.Errorf("expected no change, revision moved from %d to %d", rev, s.Revision())
	}
}

func TestSetCurrentStreak_RaisesLongest(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SetCurrentStreak(5)
	s.SetCurrentStreak(2)

	cfg := s.Settings()
	if cfg.CurrentStreak != 2 || cfg.LongestStreak != 5 {
		t.Errorf("expected current 2 longest 5, got %d/%d", cfg.CurrentStreak, cfg.LongestStreak)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s, _, clock := newTestStore(t)
	task := s.AddTask(models.Task{Title: "BCA assignment"})
	if task.Category != models.CategoryPersonal || task.Priority != models.PriorityMedium {
		t.Errorf("expected defaults, got %s/%s", task.Category, task.Priority)
	}

	clock.Advance(time.Hour)
	s.CompleteTask(task.ID)
	got, _ := s.Task(task.ID)
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(clock.Now()) {
		t.Errorf("expected completed with timestamp, got %+v", got)
	}

	undo := false
	s.UpdateTask(task.ID, models.TaskPatch{Completed: &undo})
	got, _ = s.Task(task.ID)
	if got.Completed || got.CompletedAt != nil {
		t.Errorf("expected completion cleared, got %+v", got)
	}

	s.DeleteTask(task.ID)
	s.DeleteTask(task.ID)
	if len(s.Tasks()) != 0 {
		t.Error("expected task deleted")
	}
}
