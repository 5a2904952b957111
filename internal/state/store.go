// Package state is the in-memory source of truth for every entity collection
// and user setting. All mutation goes through Store methods; each one updates
// memory, writes through to the persistence adapters and then notifies
// subscribers synchronously, in call order.
//
// Listeners run while the store's dispatch lock is held. They may read from
// the store but must not mutate it.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/settings"
	"github.com/julianstephens/focusflow/internal/storage"
)

// Listener observes committed mutations
type Listener func(Change)

// Options configures a Store. Zero values fall back to defaults.
type Options struct {
	// Objects receives write-through of entity collections. Nil disables it.
	Objects storage.ObjectStore
	// Settings receives write-through of scalar settings. Nil disables it.
	Settings *settings.Service
	Clock    func() time.Time
	NewID    func() string
}

type Store struct {
	// dispatchMu serialises whole mutations, including subscriber
	// notification, so listeners observe changes in call order.
	dispatchMu sync.Mutex
	mu         sync.RWMutex

	rev          uint64
	listeners    []listenerEntry
	nextListener int
	topicRevised []TopicRevisedHandler

	objects  storage.ObjectStore
	settings *settings.Service
	clock    func() time.Time
	newID    func() string

	tasks         []models.Task
	habits        []models.Habit
	habitHistory  []models.HabitCompletion
	sessions      []models.StudySession
	tests         []models.TestResult
	chapters      []models.ChapterStatus
	topics        []models.TopicStatus
	revisions     []models.RevisionTask
	resources     []models.Resource
	badges        []models.Badge
	insights      []models.AIInsight
	notifications []models.Notification
	routine       []models.DailyRoutineItem
	music         []models.CustomMusicTrack
	activeSession *models.StudySession
	cfg           models.Settings
}

type listenerEntry struct {
	id int
	fn Listener
}

// New creates an empty store with default settings and the default badge
// list, and registers the spaced-repetition scheduler for TopicRevised.
func New(opts Options) *Store {
	s := &Store{
		objects:  opts.Objects,
		settings: opts.Settings,
		clock:    opts.Clock,
		newID:    opts.NewID,
		badges:   models.DefaultBadges(),
		cfg:      settings.Defaults(),
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.OnTopicRevised(ScheduleRevisions)
	return s
}

// Subscribe registers l and returns a function that removes it
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Revision returns the number of committed mutations
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Now returns the store's clock reading
func (s *Store) Now() time.Time {
	return s.clock()
}

// update runs fn as one atomic mutation. Domain events emitted by fn are
// handled before the revision is committed. Write-through happens after the
// state lock is released, and listeners run last.
func (s *Store) update(origin Origin, fn func(tx *Tx)) Change {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	return s.updateLocked(origin, fn)
}

// updateLocked is update for callers already holding dispatchMu
func (s *Store) updateLocked(origin Origin, fn func(tx *Tx)) Change {
	s.mu.Lock()
	tx := &Tx{s: s, now: s.clock()}
	fn(tx)
	s.dispatchEvents(tx)

	if tx.fields == 0 {
		rev := s.rev
		s.mu.Unlock()
		return Change{Revision: rev, Origin: origin}
	}

	s.rev++
	ch := Change{Revision: s.rev, Fields: tx.fields, Origin: origin}
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	s.flush(tx.writes)

	for _, l := range listeners {
		l.fn(ch)
	}
	return ch
}

// flush applies pending write-through. Failures are logged and dropped;
// memory stays authoritative.
func (s *Store) flush(writes []write) {
	for _, w := range writes {
		var err error
		switch {
		case w.setting != "":
			if s.settings == nil {
				continue
			}
			err = s.settings.Set(w.setting, w.value)
		case s.objects == nil:
			continue
		case w.clear:
			err = s.objects.Clear(w.collection)
		case w.value == nil:
			err = s.objects.Delete(w.collection, w.id)
		default:
			err = s.objects.Put(w.collection, w.id, w.value)
		}
		if err != nil {
			logger.Warn("Failed to persist change", "collection", w.collection, "id", w.id, "setting", w.setting, "error", err)
		}
	}
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
