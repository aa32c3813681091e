package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"

	"key-dance/pkg/models"
)

const songKeyPrefix = "song:"

var ErrSongNotFound = errors.New("song not found")

type DiskStore interface {
	StoreSong(rec *models.SongRecord) error
	GetSong(songID string) (*models.SongRecord, error)
	RecentSongs(limit int) ([]*models.SongRecord, error)
	Close() error
}

type diskStore struct {
	db *badger.DB
}

func NewDiskStore(path string) (DiskStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	opts := badger.DefaultOptions(filepath.Join(path, "badger"))
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &diskStore{db: db}, nil
}

func songKey(songID string) []byte {
	return []byte(songKeyPrefix + songID)
}

func (s *diskStore) StoreSong(rec *models.SongRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal song: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(songKey(rec.SongID), data)
	})
}

func (s *diskStore) GetSong(songID string) (*models.SongRecord, error) {
	var rec models.SongRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(songKey(songID))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return &rec, nil
}

func (s *diskStore) RecentSongs(limit int) ([]*models.SongRecord, error) {
	var songs []*models.SongRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(songKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec models.SongRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				songs = append(songs, &rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	return newestFirst(songs, limit), nil
}

func (s *diskStore) Close() error {
	return s.db.Close()
}
