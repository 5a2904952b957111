package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/focusflow/internal/storage"
)

func (s *Store) GetSetting(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, storage.ErrNotInitialized
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) SetSetting(key, value string) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	if _, err := s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveSetting(key string) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) ListSettings(prefix string) (map[string]string, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}

	rows, err := s.db.Query("SELECT key, value FROM settings WHERE substr(key, 1, ?) = ?", len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}
