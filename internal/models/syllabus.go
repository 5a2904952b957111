package models

import "time"

type TopicStatus struct {
	ID       string   `json:"id"`
	Subject  string   `json:"subject"`
	Chapter  string   `json:"chapter"`
	Topic    string   `json:"topic"`
	Status   Progress `json:"status"`
	Priority Priority `json:"priority,omitempty"`
}

type ChapterStatus struct {
	ID      string   `json:"id"`
	Chapter string   `json:"chapter"`
	Subject string   `json:"subject"`
	Status  Progress `json:"status"`
}

// RevisionTask is one spaced-repetition review of a topic. TopicID is a
// lookup-only back reference; deleting the topic leaves the task in place.
type RevisionTask struct {
	ID             string         `json:"id"`
	TopicID        string         `json:"topicId"`
	TopicName      string         `json:"topicName"`
	SubjectName    string         `json:"subjectName"`
	ChapterName    string         `json:"chapterName"`
	ScheduledFor   time.Time      `json:"scheduledFor"`
	Status         RevisionStatus `json:"status"`
	RevisionNumber int            `json:"revisionNumber"`
}

type RevisionTaskPatch struct {
	Status       *RevisionStatus
	ScheduledFor *time.Time
}

func (p RevisionTaskPatch) Apply(r *RevisionTask) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.ScheduledFor != nil {
		r.ScheduledFor = *p.ScheduledFor
	}
}

// IsDue reports whether a pending revision's scheduled time has been reached.
func (r RevisionTask) IsDue(now time.Time) bool {
	return r.Status == RevisionPending && !now.Before(r.ScheduledFor)
}
