package models

import "time"

type Badge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    BadgeCategory `json:"category"`
	Icon        string        `json:"icon"`
	Unlocked    bool          `json:"unlocked"`
	UnlockedAt  *time.Time    `json:"unlockedAt,omitempty"`
	Progress    float64       `json:"progress"`
	Target      float64       `json:"target"`
}

// DefaultBadges returns a fresh copy of the seeded achievement list.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: "streak-3", Title: "3-Day Streak", Description: "Study for 3 days in a row", Category: BadgeStreak, Icon: "🔥", Target: 3},
		{ID: "streak-7", Title: "Week Warrior", Description: "Study for 7 days in a row", Category: BadgeStreak, Icon: "⚔️", Target: 7},
		{ID: "streak-30", Title: "Monthly Master", Description: "Study for 30 days in a row", Category: BadgeStreak, Icon: "👑", Target: 30},
		{ID: "pomodoro-10", Title: "Getting Started", Description: "Complete 10 Pomodoro sessions", Category: BadgePomodoro, Icon: "🍅", Target: 10},
		{ID: "pomodoro-50", Title: "Focus Pro", Description: "Complete 50 Pomodoro sessions", Category: BadgePomodoro, Icon: "🎯", Target: 50},
		{ID: "pomodoro-100", Title: "Deep Focus Legend", Description: "Complete 100 Pomodoro sessions", Category: BadgePomodoro, Icon: "🏆", Target: 100},
		{ID: "focus-10h", Title: "10 Hours", Description: "Study for 10 hours total", Category: BadgeFocus, Icon: "⏱️", Target: 10},
		{ID: "focus-100h", Title: "Century", Description: "Study for 100 hours total", Category: BadgeFocus, Icon: "💯", Target: 100},
		{ID: "focus-500h", Title: "Half a Grand", Description: "Study for 500 hours total", Category: BadgeFocus, Icon: "🌟", Target: 500},
		{ID: "test-5", Title: "Test Beginner", Description: "Complete 5 mock tests", Category: BadgeTest, Icon: "📝", Target: 5},
		{ID: "test-25", Title: "Test Champion", Description: "Complete 25 mock tests", Category: BadgeTest, Icon: "🎖️", Target: 25},
		{ID: "syllabus-50", Title: "Halfway There", Description: "Complete 50% of syllabus", Category: BadgeSyllabus, Icon: "📚", Target: 50},
		{ID: "syllabus-100", Title: "Syllabus Master", Description: "Complete 100% of syllabus", Category: BadgeSyllabus, Icon: "🎓", Target: 100},
	}
}
