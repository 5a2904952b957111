package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/focusflow/internal/storage"
)

func (s *Store) Get(collection storage.Collection, id string) (json.RawMessage, bool, error) {
	if s.db == nil {
		return nil, false, storage.ErrNotInitialized
	}

	var data string
	err := s.db.QueryRow(`SELECT data FROM objects WHERE collection = ? AND id = ?`, string(collection), id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(data), true, nil
}

func (s *Store) GetAll(collection storage.Collection) ([]json.RawMessage, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}

	rows, err := s.db.Query(`SELECT data FROM objects WHERE collection = ? ORDER BY id`, string(collection))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(data))
	}
	return out, rows.Err()
}

// Put upserts value, JSON encoded, under (collection, id)
func (s *Store) Put(collection storage.Collection, id string, value any) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	if id == "" {
		return storage.ErrEmptyID
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO objects (collection, id, data, updated_at)
		VALUES (?, ?, ?, ?)`,
		string(collection), id, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(collection storage.Collection, id string) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	if _, err := s.db.Exec(`DELETE FROM objects WHERE collection = ? AND id = ?`, string(collection), id); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Clear(collection storage.Collection) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	if _, err := s.db.Exec(`DELETE FROM objects WHERE collection = ?`, string(collection)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	return nil
}

// Count returns the number of records per collection, for status output
func (s *Store) Count() (map[storage.Collection]int, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}

	rows, err := s.db.Query(`SELECT collection, count(*) FROM objects GROUP BY collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[storage.Collection]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		counts[storage.Collection(c)] = n
	}
	return counts, rows.Err()
}
