package models

// TaskCategory groups tasks by study track
type TaskCategory string

// Priority is shared by tasks, topics and notifications
type Priority string

// SessionCategory is the track a study session counts towards
type SessionCategory string

// SessionType distinguishes pomodoro focus blocks from practice blocks
type SessionType string

// TestType is the scope of a logged mock test
type TestType string

// Progress is the syllabus progress state of a topic or chapter
type Progress string

// RevisionStatus is the state of a spaced-repetition revision
type RevisionStatus string

// NotificationType is the reminder kind of an in-app notification
type NotificationType string

// BadgeCategory groups achievement badges
type BadgeCategory string

const (
	CategoryNIMCET   TaskCategory = "NIMCET"
	CategoryBCA      TaskCategory = "BCA"
	CategoryPersonal TaskCategory = "Personal"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	SessionNIMCET SessionCategory = "NIMCET"
	SessionBCA    SessionCategory = "BCA"

	SessionFocus    SessionType = "focus"
	SessionPractice SessionType = "practice"

	TestFull    TestType = "full"
	TestTopic   TestType = "topic"
	TestChapter TestType = "chapter"

	ProgressNotStarted Progress = "Not Started"
	ProgressInProgress Progress = "In Progress"
	ProgressPracticed  Progress = "Practiced"
	ProgressRevised    Progress = "Revised"

	RevisionPending RevisionStatus = "pending"
	RevisionDone    RevisionStatus = "done"

	NotifyStudyReminder NotificationType = "study_reminder"
	NotifyHabitReminder NotificationType = "habit_reminder"
	NotifySessionMissed NotificationType = "session_missed"
	NotifyDailySummary  NotificationType = "daily_summary"
	NotifyPriorityAlert NotificationType = "priority_alert"

	BadgeStreak   BadgeCategory = "streak"
	BadgePomodoro BadgeCategory = "pomodoro"
	BadgeHabit    BadgeCategory = "habit"
	BadgeSyllabus BadgeCategory = "syllabus"
	BadgeTest     BadgeCategory = "test"
	BadgeFocus    BadgeCategory = "focus"
)

// Valid reports whether c is a known task category
func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryNIMCET, CategoryBCA, CategoryPersonal:
		return true
	}
	return false
}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Valid reports whether p is a known progress state
func (p Progress) Valid() bool {
	switch p {
	case ProgressNotStarted, ProgressInProgress, ProgressPracticed, ProgressRevised:
		return true
	}
	return false
}

// ParseProgress accepts either the display form ("In Progress") or a
// dashed/underscored slug ("in-progress", "in_progress").
func ParseProgress(s string) (Progress, bool) {
	switch normalize(s) {
	case "notstarted":
		return ProgressNotStarted, true
	case "inprogress":
		return ProgressInProgress, true
	case "practiced":
		return ProgressPracticed, true
	case "revised":
		return ProgressRevised, true
	}
	return "", false
}

func normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		}
	}
	return string(out)
}
