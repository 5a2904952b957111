package models

import "time"

type StudySession struct {
	ID        string          `json:"id"`
	StartTime time.Time       `json:"startTime"`
	EndTime   *time.Time      `json:"endTime,omitempty"`
	Duration  int             `json:"duration"` // seconds
	Subject   string          `json:"subject,omitempty"`
	Chapter   string          `json:"chapter,omitempty"`
	Category  SessionCategory `json:"category"`
	Type      SessionType     `json:"type"`
}

type StudySessionPatch struct {
	EndTime  **time.Time
	Duration *int
	Subject  *string
	Chapter  *string
}

func (p StudySessionPatch) Apply(s *StudySession) {
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Duration != nil && *p.Duration >= 0 {
		s.Duration = *p.Duration
	}
	if p.Subject != nil {
		s.Subject = *p.Subject
	}
	if p.Chapter != nil {
		s.Chapter = *p.Chapter
	}
}

// TestResult is a logged mock test score. Score is expected to lie within
// [0, TotalScore] but the store does not enforce it.
type TestResult struct {
	ID         string    `json:"id"`
	TestName   string    `json:"testName"`
	Subject    string    `json:"subject"`
	Score      float64   `json:"score"`
	TotalScore float64   `json:"totalScore"`
	Date       time.Time `json:"date"`
	Type       TestType  `json:"type"`
}

// Percent returns the score as a percentage of the total, or 0 for an empty total.
func (r TestResult) Percent() float64 {
	if r.TotalScore <= 0 {
		return 0
	}
	return r.Score / r.TotalScore * 100
}
