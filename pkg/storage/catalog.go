package storage

import (
	"errors"

	"go.uber.org/zap"

	"key-dance/pkg/models"
)

// Catalog remembers recognized songs. Reads hit memory first and fall back
// to disk; disk hits are cached in memory.
type Catalog struct {
	mem    MemoryStore
	disk   DiskStore
	logger *zap.Logger
}

// NewCatalog accepts a nil disk store for memory-only operation.
func NewCatalog(mem MemoryStore, disk DiskStore, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{mem: mem, disk: disk, logger: logger}
}

func (c *Catalog) Record(result *models.RecognitionResult) (*models.SongRecord, error) {
	rec := models.NewSongRecord(result)

	if err := c.mem.StoreSong(rec); err != nil {
		return nil, err
	}
	if c.disk != nil {
		if err := c.disk.StoreSong(rec); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("song recorded", zap.String("song_id", rec.SongID), zap.String("record_id", rec.ID))
	return rec, nil
}

func (c *Catalog) Get(songID string) (*models.SongRecord, error) {
	rec, err := c.mem.GetSong(songID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrSongNotFound) || c.disk == nil {
		return nil, err
	}

	rec, err = c.disk.GetSong(songID)
	if err != nil {
		return nil, err
	}
	if err := c.mem.StoreSong(rec); err != nil {
		c.logger.Debug("failed to cache song in memory", zap.String("song_id", songID), zap.Error(err))
	}
	return rec, nil
}

func (c *Catalog) Recent(limit int) ([]*models.SongRecord, error) {
	if c.disk != nil {
		return c.disk.RecentSongs(limit)
	}
	return c.mem.RecentSongs(limit)
}

// Observe is a recognition.Observer that records successful results.
func (c *Catalog) Observe(result *models.RecognitionResult, err error) {
	if err != nil || result == nil {
		return
	}
	if _, err := c.Record(result); err != nil {
		c.logger.Error("failed to record song", zap.String("song_id", result.SongID), zap.Error(err))
	}
}
