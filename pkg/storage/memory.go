package storage

import (
	"sort"
	"sync"

	"key-dance/pkg/models"
)

type MemoryStore interface {
	StoreSong(rec *models.SongRecord) error
	GetSong(songID string) (*models.SongRecord, error)
	RecentSongs(limit int) ([]*models.SongRecord, error)
}

// memoryStore keeps the latest record per song id.
type memoryStore struct {
	songs map[string]*models.SongRecord
	mu    sync.RWMutex
}

func NewMemoryStore() MemoryStore {
	return &memoryStore{
		songs: make(map[string]*models.SongRecord),
	}
}

func (s *memoryStore) StoreSong(rec *models.SongRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.songs[rec.SongID] = rec
	return nil
}

func (s *memoryStore) GetSong(songID string) (*models.SongRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.songs[songID]
	if !exists {
		return nil, ErrSongNotFound
	}

	return rec, nil
}

func (s *memoryStore) RecentSongs(limit int) ([]*models.SongRecord, error) {
	s.mu.RLock()
	songs := make([]*models.SongRecord, 0, len(s.songs))
	for _, rec := range s.songs {
		songs = append(songs, rec)
	}
	s.mu.RUnlock()

	return newestFirst(songs, limit), nil
}

func newestFirst(songs []*models.SongRecord, limit int) []*models.SongRecord {
	sort.Slice(songs, func(i, j int) bool {
		return songs[i].RecognizedAt.After(songs[j].RecognizedAt)
	})
	if limit > 0 && len(songs) > limit {
		songs = songs[:limit]
	}
	return songs
}
