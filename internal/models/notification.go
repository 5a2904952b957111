package models

import (
	"fmt"
	"strings"
	"time"
)

type Notification struct {
	ID       string           `json:"id"`
	Type     NotificationType `json:"type"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Time     time.Time        `json:"time"`
	Read     bool             `json:"read"`
	Priority Priority         `json:"priority"`
}

func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("notification title cannot be empty")
	}
	switch n.Type {
	case NotifyStudyReminder, NotifyHabitReminder, NotifySessionMissed, NotifyDailySummary, NotifyPriorityAlert:
	default:
		return fmt.Errorf("invalid notification type %q", n.Type)
	}
	if !n.Priority.Valid() {
		return fmt.Errorf("invalid notification priority %q", n.Priority)
	}
	return nil
}

// WithinWindow reports whether the notification's time is less than window away from now.
func (n *Notification) WithinWindow(now time.Time, window time.Duration) bool {
	d := n.Time.Sub(now)
	if d < 0 {
		d = -d
	}
	return d < window
}
