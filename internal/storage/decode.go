package storage

import (
	"encoding/json"
	"fmt"
)

// GetAllAs loads every record of a collection and decodes it into T.
// Records that fail to decode are reported through skip and left out.
func GetAllAs[T any](s ObjectStore, collection Collection, skip func(error)) ([]T, error) {
	raw, err := s.GetAll(collection)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			if skip != nil {
				skip(fmt.Errorf("failed to decode %s record: %w", collection, err))
			}
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// GetAs loads a single record and decodes it into T
func GetAs[T any](s ObjectStore, collection Collection, id string) (T, bool, error) {
	var v T
	raw, ok, err := s.Get(collection, id)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return v, true, nil
}
