package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a Provider that keeps everything in process memory. It is
// used for ephemeral sessions and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	objects  map[Collection]map[string]json.RawMessage
	settings map[string]string

	// FailWrites makes every write return an error when set
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:  make(map[Collection]map[string]json.RawMessage),
		settings: make(map[string]string),
	}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }

func (s *MemoryStore) Get(collection Collection, id string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.objects[collection][id]
	return v, ok, nil
}

func (s *MemoryStore) GetAll(collection Collection) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.objects[collection]))
	for id := range s.objects[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.objects[collection][id])
	}
	return out, nil
}

func (s *MemoryStore) Put(collection Collection, id string, value any) error {
	if id == "" {
		return ErrEmptyID
	}
	if s.FailWrites != nil {
		return s.FailWrites
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects[collection] == nil {
		s.objects[collection] = make(map[string]json.RawMessage)
	}
	s.objects[collection][id] = data
	return nil
}

func (s *MemoryStore) Delete(collection Collection, id string) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects[collection], id)
	return nil
}

func (s *MemoryStore) Clear(collection Collection) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, collection)
	return nil
}

func (s *MemoryStore) GetSetting(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *MemoryStore) SetSetting(key, value string) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *MemoryStore) RemoveSetting(key string) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, key)
	return nil
}

func (s *MemoryStore) ListSettings(prefix string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string)
	for k, v := range s.settings {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}
