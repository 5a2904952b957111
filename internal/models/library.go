package models

import "time"

type ResourceType string

type RoutineType string

type InsightType string

const (
	ResourcePDF   ResourceType = "pdf"
	ResourceNote  ResourceType = "note"
	ResourceVideo ResourceType = "video"
	ResourceLink  ResourceType = "link"

	RoutineFocus    RoutineType = "focus"
	RoutinePractice RoutineType = "practice"
	RoutineReview   RoutineType = "review"

	InsightSummary  InsightType = "summary"
	InsightStrength InsightType = "strength"
	InsightWeakness InsightType = "weakness"
	InsightPlan     InsightType = "plan"
	InsightChat     InsightType = "chat"
)

type Resource struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Type    ResourceType `json:"type"`
	URL     string       `json:"url"`
	Subject string       `json:"subject"`
	Chapter string       `json:"chapter,omitempty"`
	AddedAt time.Time    `json:"addedAt"`
}

type CustomMusicTrack struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	FileURL string    `json:"fileUrl"`
	AddedAt time.Time `json:"addedAt"`
}

type DailyRoutineItem struct {
	ID            string      `json:"id"`
	Subject       string      `json:"subject"`
	ScheduledTime string      `json:"scheduledTime"`
	Completed     bool        `json:"completed"`
	Type          RoutineType `json:"type"`
}

type AIInsight struct {
	ID      string      `json:"id"`
	Type    InsightType `json:"type"`
	Content string      `json:"content"`
	Date    time.Time   `json:"date"`
}

type PomodoroBackground struct {
	Type  string `json:"type"` // color, gradient or image
	Value string `json:"value"`
}
