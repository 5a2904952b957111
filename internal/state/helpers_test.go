package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/settings"
	"github.com/julianstephens/focusflow/internal/storage"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore, *fixedClock) {
	t.Helper()
	mem := storage.NewMemoryStore()
	clock := &fixedClock{now: time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)} // Wednesday
	s := New(Options{
		Objects:  mem,
		Settings: settings.New(mem),
		Clock:    clock.Now,
		NewID:    sequentialIDs(),
	})
	return s, mem, clock
}
