package state

import (
	"slices"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// AddNotification appends n with a fresh id and read=false. A zero Time is
// set to now; a non-zero Time schedules an ad-hoc reminder.
func (s *Store) AddNotification(n models.Notification) models.Notification {
	var out models.Notification
	s.update(OriginLocal, func(tx *Tx) {
		out = tx.AddNotification(n)
	})
	return out
}

// MarkNotificationRead flips read to true; it never flips back
func (s *Store) MarkNotificationRead(id string) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.notifications, func(n models.Notification) bool { return n.ID == id })
		if i < 0 || s.notifications[i].Read {
			return
		}
		s.notifications[i].Read = true
		tx.put(FieldNotifications, storage.CollectionNotifications, id, s.notifications[i])
	})
}

// MarkAllNotificationsRead marks every unread notification read
func (s *Store) MarkAllNotificationsRead() {
	s.update(OriginLocal, func(tx *Tx) {
		for i := range s.notifications {
			if s.notifications[i].Read {
				continue
			}
			s.notifications[i].Read = true
			tx.put(FieldNotifications, storage.CollectionNotifications, s.notifications[i].ID, s.notifications[i])
		}
	})
}

// ClearNotifications empties the notification center
func (s *Store) ClearNotifications() {
	s.update(OriginLocal, func(tx *Tx) {
		s.notifications = nil
		replaceAll(tx, FieldNotifications, storage.CollectionNotifications, s.notifications, func(n models.Notification) string { return n.ID })
	})
}

func (s *Store) SetNotifications(notifications []models.Notification) {
	s.update(OriginLocal, func(tx *Tx) {
		s.notifications = clone(notifications)
		replaceAll(tx, FieldNotifications, storage.CollectionNotifications, s.notifications, func(n models.Notification) string { return n.ID })
	})
}

func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.notifications)
}

// UnreadCount returns the number of unread notifications
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, x := range s.notifications {
		if !x.Read {
			n++
		}
	}
	return n
}
