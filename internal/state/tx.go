package state

import (
	"time"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

type write struct {
	collection storage.Collection
	id         string
	value      any
	clear      bool
	setting    string
}

// Tx is an in-progress mutation. It is only valid inside the function or
// event handler it was passed to.
type Tx struct {
	s      *Store
	now    time.Time
	fields Field
	writes []write
	events []any
}

// Now is the clock reading taken when the mutation started
func (tx *Tx) Now() time.Time { return tx.now }

// NewID returns a fresh unique identifier
func (tx *Tx) NewID() string { return tx.s.newID() }

func (tx *Tx) touch(f Field) { tx.fields |= f }

func (tx *Tx) emit(e any) { tx.events = append(tx.events, e) }

func (tx *Tx) put(f Field, c storage.Collection, id string, v any) {
	tx.touch(f)
	tx.writes = append(tx.writes, write{collection: c, id: id, value: v})
}

func (tx *Tx) del(f Field, c storage.Collection, id string) {
	tx.touch(f)
	tx.writes = append(tx.writes, write{collection: c, id: id})
}

// replaceAll records a clear of c followed by a put of every item
func replaceAll[T any](tx *Tx, f Field, c storage.Collection, items []T, id func(T) string) {
	tx.touch(f)
	tx.writes = append(tx.writes, write{collection: c, clear: true})
	for _, it := range items {
		tx.writes = append(tx.writes, write{collection: c, id: id(it), value: it})
	}
}

func (tx *Tx) setting(f Field, key string, v any) {
	tx.touch(f)
	tx.writes = append(tx.writes, write{setting: key, value: v})
}

// AddNotification appends n with a fresh id, read=false and, when n.Time is
// zero, the mutation's timestamp.
func (tx *Tx) AddNotification(n models.Notification) models.Notification {
	n.ID = tx.NewID()
	if n.Time.IsZero() {
		n.Time = tx.now
	}
	n.Read = false
	if n.Priority == "" {
		n.Priority = models.PriorityMedium
	}
	tx.s.notifications = append(tx.s.notifications, n)
	tx.put(FieldNotifications, storage.CollectionNotifications, n.ID, n)
	return n
}

// AppendRevisionTasks adds tasks to the revision collection as given
func (tx *Tx) AppendRevisionTasks(tasks ...models.RevisionTask) {
	for _, r := range tasks {
		tx.s.revisions = append(tx.s.revisions, r)
		tx.put(FieldRevisionTasks, storage.CollectionRevisionTasks, r.ID, r)
	}
}
