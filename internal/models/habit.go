package models

import (
	"fmt"
	"strings"
	"time"
)

// DaysPerWeek is the fixed length of a habit's weekly history (Sunday..Saturday)
const DaysPerWeek = 7

type Habit struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Streak        int               `json:"streak"`
	LastCompleted *time.Time        `json:"lastCompleted,omitempty"`
	WeeklyHistory [DaysPerWeek]bool `json:"weeklyHistory"`
	ReminderTime  string            `json:"reminderTime,omitempty"` // HH:MM format
}

type HabitPatch struct {
	Title         *string
	Streak        *int
	LastCompleted **time.Time
	ReminderTime  *string
}

// HabitCompletion records a single toggle of a habit's weekly history
type HabitCompletion struct {
	ID         string    `json:"id"`
	HabitID    string    `json:"habitId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	DayIndex   int       `json:"dayIndex"`
	Done       bool      `json:"done"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if h.Streak < 0 {
		return fmt.Errorf("habit streak cannot be negative")
	}
	if h.ReminderTime != "" {
		if _, err := time.Parse("15:04", h.ReminderTime); err != nil {
			return fmt.Errorf("invalid reminder time format (expected HH:MM): %w", err)
		}
	}
	return nil
}

func (p HabitPatch) Apply(h *Habit) {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Streak != nil && *p.Streak >= 0 {
		h.Streak = *p.Streak
	}
	if p.LastCompleted != nil {
		h.LastCompleted = *p.LastCompleted
	}
	if p.ReminderTime != nil {
		h.ReminderTime = *p.ReminderTime
	}
}

// DoneOn reports whether the habit is marked for the given weekday index.
// Out-of-range indexes are treated as not done.
func (h *Habit) DoneOn(dayIndex int) bool {
	if dayIndex < 0 || dayIndex >= DaysPerWeek {
		return false
	}
	return h.WeeklyHistory[dayIndex]
}
