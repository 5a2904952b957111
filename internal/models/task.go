package models

import (
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    TaskCategory `json:"category"`
	Priority    Priority     `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// TaskPatch carries the fields of an update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Category    *TaskCategory
	Priority    *Priority
	DueDate     **time.Time
	Completed   *bool
	CompletedAt **time.Time
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if !t.Category.Valid() {
		return fmt.Errorf("invalid task category %q (expected NIMCET, BCA or Personal)", t.Category)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid task priority %q (expected low, medium or high)", t.Priority)
	}
	return nil
}

// Apply merges p into t. Completing a task stamps CompletedAt when the patch
// does not carry one; un-completing clears it.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.CompletedAt != nil {
		t.CompletedAt = *p.CompletedAt
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if t.Completed && t.CompletedAt == nil {
		ts := now
		t.CompletedAt = &ts
	}
	if !t.Completed {
		t.CompletedAt = nil
	}
}

// MinutesUntilDue returns the signed number of minutes between now and the due date.
func (t *Task) MinutesUntilDue(now time.Time) (float64, bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return t.DueDate.Sub(now).Minutes(), true
}
