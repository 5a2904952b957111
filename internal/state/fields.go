package state

import "strings"

// Field is a bit in the mask describing which parts of the store a mutation touched
type Field uint32

const (
	FieldTasks Field = 1 << iota
	FieldHabits
	FieldHabitHistory
	FieldStudySessions
	FieldTestResults
	FieldChapters
	FieldTopics
	FieldRevisionTasks
	FieldResources
	FieldBadges
	FieldAIInsights
	FieldNotifications
	FieldDailyRoutine
	FieldMusicTracks
	FieldActiveSession
	FieldSettings
	FieldLastSync

	fieldEnd
)

// FieldAll covers every part of the store
const FieldAll = fieldEnd - 1

var fieldNames = map[Field]string{
	FieldTasks:         "tasks",
	FieldHabits:        "habits",
	FieldHabitHistory:  "habitHistory",
	FieldStudySessions: "studySessions",
	FieldTestResults:   "testResults",
	FieldChapters:      "syllabusProgress",
	FieldTopics:        "topics",
	FieldRevisionTasks: "revisionTasks",
	FieldResources:     "resources",
	FieldBadges:        "badges",
	FieldAIInsights:    "aiInsights",
	FieldNotifications: "notifications",
	FieldDailyRoutine:  "dailyRoutine",
	FieldMusicTracks:   "customMusicTracks",
	FieldActiveSession: "activeSession",
	FieldSettings:      "settings",
	FieldLastSync:      "lastSyncTimestamp",
}

// Has reports whether every bit of f is set in m
func (m Field) Has(f Field) bool {
	return m&f == f && f != 0
}

func (m Field) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for f := Field(1); f < fieldEnd; f <<= 1 {
		if m&f != 0 {
			parts = append(parts, fieldNames[f])
		}
	}
	return strings.Join(parts, "|")
}

// Origin tells subscribers where a mutation came from
type Origin int

const (
	OriginLocal Origin = iota
	OriginRemote
	OriginHydrate
	// OriginExternal marks state another process committed to storage
	OriginExternal
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginHydrate:
		return "hydrate"
	case OriginExternal:
		return "external"
	default:
		return "local"
	}
}

// Change is delivered to subscribers after every mutation
type Change struct {
	Revision uint64
	Fields   Field
	Origin   Origin
}

// OnlyLastSync reports whether the mutation changed nothing but the
// last-synced timestamp.
func (c Change) OnlyLastSync() bool {
	return c.Fields == FieldLastSync
}
