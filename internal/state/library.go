package state

import (
	"slices"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

func (s *Store) AddResource(r models.Resource) models.Resource {
	s.update(OriginLocal, func(tx *Tx) {
		r.ID = tx.NewID()
		r.AddedAt = tx.now
		s.resources = append(s.resources, r)
		tx.put(FieldResources, storage.CollectionResources, r.ID, r)
	})
	return r
}

func (s *Store) DeleteResource(id string) {
	s.update(OriginLocal, func(tx *Tx) {
		n := len(s.resources)
		s.resources = slices.DeleteFunc(s.resources, func(r models.Resource) bool { return r.ID == id })
		if len(s.resources) != n {
			tx.del(FieldResources, storage.CollectionResources, id)
		}
	})
}

func (s *Store) SetResources(resources []models.Resource) {
	s.update(OriginLocal, func(tx *Tx) {
		s.resources = clone(resources)
		replaceAll(tx, FieldResources, storage.CollectionResources, s.resources, func(r models.Resource) string { return r.ID })
	})
}

func (s *Store) Resources() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.resources)
}

func (s *Store) AddAIInsight(in models.AIInsight) models.AIInsight {
	s.update(OriginLocal, func(tx *Tx) {
		in.ID = tx.NewID()
		in.Date = tx.now
		s.insights = append(s.insights, in)
		tx.put(FieldAIInsights, storage.CollectionAIInsights, in.ID, in)
	})
	return in
}

func (s *Store) SetAIInsights(insights []models.AIInsight) {
	s.update(OriginLocal, func(tx *Tx) {
		s.insights = clone(insights)
		replaceAll(tx, FieldAIInsights, storage.CollectionAIInsights, s.insights, func(in models.AIInsight) string { return in.ID })
	})
}

func (s *Store) AIInsights() []models.AIInsight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.insights)
}

func (s *Store) AddCustomMusicTrack(t models.CustomMusicTrack) models.CustomMusicTrack {
	s.update(OriginLocal, func(tx *Tx) {
		t.ID = tx.NewID()
		t.AddedAt = tx.now
		s.music = append(s.music, t)
		tx.put(FieldMusicTracks, storage.CollectionMusicTracks, t.ID, t)
	})
	return t
}

func (s *Store) RemoveCustomMusicTrack(id string) {
	s.update(OriginLocal, func(tx *Tx) {
		n := len(s.music)
		s.music = slices.DeleteFunc(s.music, func(t models.CustomMusicTrack) bool { return t.ID == id })
		if len(s.music) != n {
			tx.del(FieldMusicTracks, storage.CollectionMusicTracks, id)
		}
	})
}

func (s *Store) SetCustomMusicTracks(tracks []models.CustomMusicTrack) {
	s.update(OriginLocal, func(tx *Tx) {
		s.music = clone(tracks)
		replaceAll(tx, FieldMusicTracks, storage.CollectionMusicTracks, s.music, func(t models.CustomMusicTrack) string { return t.ID })
	})
}

func (s *Store) CustomMusicTracks() []models.CustomMusicTrack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.music)
}

func (s *Store) SetDailyRoutine(items []models.DailyRoutineItem) {
	s.update(OriginLocal, func(tx *Tx) {
		s.routine = clone(items)
		for i := range s.routine {
			if s.routine[i].ID == "" {
				s.routine[i].ID = tx.NewID()
			}
		}
		replaceAll(tx, FieldDailyRoutine, storage.CollectionDailyRoutine, s.routine, func(r models.DailyRoutineItem) string { return r.ID })
	})
}

func (s *Store) DailyRoutine() []models.DailyRoutineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.routine)
}
