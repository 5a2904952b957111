package state

import (
	"math"
	"slices"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// Metrics are the inputs to badge progress
type Metrics struct {
	CurrentStreak int
	Pomodoros     int
	FocusHours    float64
	Tests         int
}

// badgeFamilies maps each recomputed badge category to its metric
var badgeFamilies = map[models.BadgeCategory]func(Metrics) float64{
	models.BadgeStreak:   func(m Metrics) float64 { return float64(m.CurrentStreak) },
	models.BadgePomodoro: func(m Metrics) float64 { return float64(m.Pomodoros) },
	models.BadgeFocus:    func(m Metrics) float64 { return m.FocusHours },
	models.BadgeTest:     func(m Metrics) float64 { return float64(m.Tests) },
}

func (s *Store) metricsLocked() Metrics {
	m := Metrics{CurrentStreak: s.cfg.CurrentStreak, Tests: len(s.tests)}
	seconds := 0
	for _, sess := range s.sessions {
		seconds += sess.Duration
		if sess.Type == models.SessionFocus {
			m.Pomodoros++
		}
	}
	m.FocusHours = float64(seconds) / 3600
	return m
}

// Metrics returns the current badge inputs
func (s *Store) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metricsLocked()
}

// EvaluateBadge returns b updated for metric. Unlocked badges are returned
// unchanged; a locked badge unlocks the first time metric reaches target.
func EvaluateBadge(b models.Badge, metric float64, now time.Time) (models.Badge, bool) {
	if b.Unlocked {
		return b, false
	}
	next := b
	next.Progress = math.Min(metric, b.Target)
	if metric >= b.Target {
		next.Unlocked = true
		ts := now
		next.UnlockedAt = &ts
	}
	changed := next.Progress != b.Progress || next.Unlocked != b.Unlocked
	return next, changed
}

// CheckAndUnlockBadges recomputes progress for the streak, pomodoro,
// focus-hours and test badge families. It is idempotent and never
// regresses an unlocked badge.
func (s *Store) CheckAndUnlockBadges() {
	s.update(OriginLocal, func(tx *Tx) {
		m := s.metricsLocked()
		for i, b := range s.badges {
			metric, ok := badgeFamilies[b.Category]
			if !ok {
				continue
			}
			next, changed := EvaluateBadge(b, metric(m), tx.now)
			if !changed {
				continue
			}
			s.badges[i] = next
			tx.put(FieldBadges, storage.CollectionAchievements, next.ID, next)
		}
	})
}

// UnlockBadge unlocks a badge directly. Already unlocked badges keep their
// original unlock time.
func (s *Store) UnlockBadge(id string) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.badges, func(b models.Badge) bool { return b.ID == id })
		if i < 0 || s.badges[i].Unlocked {
			return
		}
		ts := tx.now
		s.badges[i].Unlocked = true
		s.badges[i].UnlockedAt = &ts
		tx.put(FieldBadges, storage.CollectionAchievements, id, s.badges[i])
	})
}

// UpdateBadgeProgress sets a locked badge's progress, capped at its target
func (s *Store) UpdateBadgeProgress(id string, progress float64) {
	s.update(OriginLocal, func(tx *Tx) {
		i := slices.IndexFunc(s.badges, func(b models.Badge) bool { return b.ID == id })
		if i < 0 || s.badges[i].Unlocked {
			return
		}
		s.badges[i].Progress = math.Max(0, math.Min(progress, s.badges[i].Target))
		tx.put(FieldBadges, storage.CollectionAchievements, id, s.badges[i])
	})
}

func (s *Store) SetBadges(badges []models.Badge) {
	s.update(OriginLocal, func(tx *Tx) {
		s.badges = clone(badges)
		replaceAll(tx, FieldBadges, storage.CollectionAchievements, s.badges, func(b models.Badge) string { return b.ID })
	})
}

func (s *Store) Badges() []models.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.badges)
}
