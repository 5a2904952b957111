// Package remote holds the single-document snapshot stores the sync
// coordinator mirrors the local state to. Writes are last-write-wins.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Snapshot is one complete copy of the synchronised state. Timestamp is in
// unix milliseconds.
type Snapshot struct {
	Timestamp   int64           `json:"timestamp"`
	Data        json.RawMessage `json:"data"`
	Device      string          `json:"device"`
	LastUpdated string          `json:"lastUpdated"`
}

// Store persists a single snapshot. Load returns (nil, nil) when nothing
// has been saved yet.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Close() error
}

var ErrEmptySnapshot = errors.New("snapshot has no data")

func validate(snap Snapshot) error {
	if len(snap.Data) == 0 {
		return ErrEmptySnapshot
	}
	if !json.Valid(snap.Data) {
		return errors.New("snapshot data is not valid JSON")
	}
	return nil
}

// MemoryStore keeps the snapshot in process
type MemoryStore struct {
	mu    sync.Mutex
	snap  *Snapshot
	saves int

	// FailSave and FailLoad inject errors when set
	FailSave error
	FailLoad error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	if err := validate(snap); err != nil {
		return err
	}
	cp := snap
	cp.Data = append(json.RawMessage(nil), snap.Data...)
	m.snap = &cp
	m.saves++
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLoad != nil {
		return nil, m.FailLoad
	}
	if m.snap == nil {
		return nil, nil
	}
	cp := *m.snap
	return &cp, nil
}

// Saves returns the number of successful saves
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error { return nil }
