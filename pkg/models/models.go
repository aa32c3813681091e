package models

import (
	"time"

	"github.com/google/uuid"
)

// AudioData is the body of POST /api/recognize.
type AudioData struct {
	Data string `json:"data"`
}

type RecognitionResult struct {
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Confidence float64 `json:"confidence"`
	SongID     string  `json:"song_id"`
}

type StaffNotation struct {
	Title    string `json:"title"`
	Notation string `json:"notation"`
}

// SongRecord is a catalog entry written after a successful recognition.
type SongRecord struct {
	ID           string    `json:"id"`
	SongID       string    `json:"song_id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	Confidence   float64   `json:"confidence"`
	RecognizedAt time.Time `json:"recognized_at"`
}

func NewSongRecord(result *RecognitionResult) *SongRecord {
	return &SongRecord{
		ID:           uuid.New().String(),
		SongID:       result.SongID,
		Title:        result.Title,
		Artist:       result.Artist,
		Confidence:   result.Confidence,
		RecognizedAt: time.Now(),
	}
}
