package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/state"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateTask       ConflictType = "duplicate_task"
	ConflictInvalidRecord       ConflictType = "invalid_record"
	ConflictOverlappingSessions ConflictType = "overlapping_sessions"
	ConflictScoreOutOfRange     ConflictType = "score_out_of_range"
	ConflictOrphanRevision      ConflictType = "orphan_revision"
	ConflictUnscheduledRevision ConflictType = "unscheduled_revision"
)

// Conflict represents a detected problem in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // titles of the records involved
	IDs         []string // ids of the records involved, for auto-fixing
}

// Fixable reports whether AutoFix can resolve the conflict
func (c Conflict) Fixable() bool {
	return c.Type == ConflictDuplicateTask
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a data snapshot for inconsistencies the store itself
// does not prevent
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateData runs every check over d
func (v *Validator) ValidateData(d state.Data) ValidationResult {
	var result ValidationResult
	result.Conflicts = append(result.Conflicts, v.ValidateTasks(d.Tasks).Conflicts...)
	result.Conflicts = append(result.Conflicts, validateRecords(d)...)
	result.Conflicts = append(result.Conflicts, v.ValidateSessions(d.StudySessions).Conflicts...)
	result.Conflicts = append(result.Conflicts, validateScores(d.TestResults)...)
	result.Conflicts = append(result.Conflicts, validateRevisions(d.RevisionTasks, d.Topics)...)
	return result
}

// ValidateTasks reports invalid tasks and open tasks sharing a title,
// category and due date
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	var result ValidationResult
	groups := make(map[string][]models.Task)
	var order []string

	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRecord,
				Description: fmt.Sprintf("Task %q is invalid: %v", t.Title, err),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
		}
		if t.Completed {
			continue
		}
		key := taskKey(t)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	for _, key := range order {
		dupes := groups[key]
		if len(dupes) < 2 {
			continue
		}
		ids := make([]string, 0, len(dupes))
		for _, t := range dupes {
			ids = append(ids, t.ID)
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateTask,
			Description: fmt.Sprintf("Duplicate task: %q appears %d times%s", dupes[0].Title, len(dupes), dueSuffix(dupes[0])),
			Items:       []string{dupes[0].Title},
			IDs:         ids,
		})
	}
	return result
}

func taskKey(t models.Task) string {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.UTC().Format(time.RFC3339)
	}
	return strings.ToLower(strings.TrimSpace(t.Title)) + "\x00" + string(t.Category) + "\x00" + due
}

func dueSuffix(t models.Task) string {
	if t.DueDate == nil {
		return ""
	}
	return " (due " + t.DueDate.Local().Format(constants.DateFormat+" "+constants.TimeFormat) + ")"
}

func validateRecords(d state.Data) []Conflict {
	var out []Conflict
	for _, h := range d.Habits {
		if err := h.Validate(); err != nil {
			out = append(out, Conflict{
				Type:        ConflictInvalidRecord,
				Description: fmt.Sprintf("Habit %q is invalid: %v", h.Title, err),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		}
	}
	for _, n := range d.Notifications {
		if err := n.Validate(); err != nil {
			out = append(out, Conflict{
				Type:        ConflictInvalidRecord,
				Description: fmt.Sprintf("Notification %q is invalid: %v", n.Title, err),
				Items:       []string{n.Title},
				IDs:         []string{n.ID},
			})
		}
	}
	return out
}

// ValidateSessions reports finished study sessions whose time ranges overlap
func (v *Validator) ValidateSessions(sessions []models.StudySession) ValidationResult {
	var result ValidationResult
	sorted := slices.Clone(sessions)
	slices.SortStableFunc(sorted, func(a, b models.StudySession) int { return a.StartTime.Compare(b.StartTime) })

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if !b.StartTime.Before(sessionEnd(a)) {
				break
			}
			if !timesOverlap(a.StartTime, sessionEnd(a), b.StartTime, sessionEnd(b)) {
				continue
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingSessions,
				Description: fmt.Sprintf("Overlapping study sessions on %s: %s-%s and %s-%s",
					a.StartTime.Local().Format(constants.DateFormat),
					a.StartTime.Local().Format(constants.TimeFormat), sessionEnd(a).Local().Format(constants.TimeFormat),
					b.StartTime.Local().Format(constants.TimeFormat), sessionEnd(b).Local().Format(constants.TimeFormat)),
				Items: []string{a.Subject, b.Subject},
				IDs:   []string{a.ID, b.ID},
			})
		}
	}
	return result
}

// sessionEnd prefers the recorded end time and falls back to start plus duration
func sessionEnd(s models.StudySession) time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return s.StartTime.Add(time.Duration(s.Duration) * time.Second)
}

// timesOverlap checks if two half-open ranges intersect
func timesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

func validateScores(results []models.TestResult) []Conflict {
	var out []Conflict
	for _, r := range results {
		if r.TotalScore > 0 && r.Score >= 0 && r.Score <= r.TotalScore {
			continue
		}
		out = append(out, Conflict{
			Type:        ConflictScoreOutOfRange,
			Description: fmt.Sprintf("Test %q has score %g outside 0..%g", r.TestName, r.Score, r.TotalScore),
			Items:       []string{r.TestName},
			IDs:         []string{r.ID},
		})
	}
	return out
}

func validateRevisions(revisions []models.RevisionTask, topics []models.TopicStatus) []Conflict {
	known := make(map[string]bool, len(topics))
	for _, t := range topics {
		known[t.ID] = true
	}
	var out []Conflict
	for _, r := range revisions {
		if !known[r.TopicID] {
			out = append(out, Conflict{
				Type:        ConflictOrphanRevision,
				Description: fmt.Sprintf("Revision %d of %q refers to unknown topic %s", r.RevisionNumber, r.TopicName, r.TopicID),
				Items:       []string{r.TopicName},
				IDs:         []string{r.ID},
			})
		}
		if r.Status == models.RevisionPending && r.ScheduledFor.IsZero() {
			out = append(out, Conflict{
				Type:        ConflictUnscheduledRevision,
				Description: fmt.Sprintf("Revision %d of %q is pending without a schedule", r.RevisionNumber, r.TopicName),
				Items:       []string{r.TopicName},
				IDs:         []string{r.ID},
			})
		}
	}
	return out
}

// AutoFixDuplicateTasks keeps the oldest task of each duplicate group and
// deletes the others through deleteFunc. It returns one action per group
// touched.
func AutoFixDuplicateTasks(conflicts []Conflict, tasks []models.Task, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	taskMap := make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		taskMap[task.ID] = task
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateTask || len(conflict.IDs) <= 1 {
			continue
		}

		var group []models.Task
		for _, id := range conflict.IDs {
			if task, ok := taskMap[id]; ok {
				group = append(group, task)
			}
		}
		if len(group) <= 1 {
			continue
		}

		// oldest first, ids break ties
		slices.SortStableFunc(group, func(a, b models.Task) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		})

		keep := group[0]
		var deletedIDs, failedIDs []string
		for _, t := range group[1:] {
			if err := deleteFunc(t.ID); err != nil {
				failedIDs = append(failedIDs, t.ID)
				continue
			}
			deletedIDs = append(deletedIDs, t.ID)
		}

		switch {
		case len(deletedIDs) > 0:
			msg := fmt.Sprintf("Removed %d duplicate task(s) titled %q (kept ID: %s, removed: %v)", len(deletedIDs), keep.Title, keep.ID, deletedIDs)
			if len(failedIDs) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		case len(failedIDs) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates of %q: %v", keep.Title, failedIDs),
				SourceConflict: conflict,
			})
		}
	}
	return actions
}
