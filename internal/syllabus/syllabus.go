// Package syllabus holds the NIMCET topic list that seeds an empty store.
package syllabus

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/focusflow/internal/models"
)

//go:embed nimcet.json
var nimcetJSON []byte

// Default returns a fresh copy of the seeded topic list
func Default() ([]models.TopicStatus, error) {
	var topics []models.TopicStatus
	if err := json.Unmarshal(nimcetJSON, &topics); err != nil {
		return nil, fmt.Errorf("failed to decode seeded syllabus: %w", err)
	}
	return topics, nil
}

// Chapters derives one ChapterStatus per distinct (subject, chapter) pair,
// in first-seen order, all Not Started.
func Chapters(topics []models.TopicStatus) []models.ChapterStatus {
	seen := make(map[string]bool)
	var out []models.ChapterStatus
	for _, t := range topics {
		key := t.Subject + "/" + t.Chapter
		if seen[key] {
			continue
		}
		seen[key] = true
		id := t.ID
		if len(id) > 3 {
			id = id[:len(id)-3]
		}
		out = append(out, models.ChapterStatus{
			ID:      id,
			Subject: t.Subject,
			Chapter: t.Chapter,
			Status:  models.ProgressNotStarted,
		})
	}
	return out
}
