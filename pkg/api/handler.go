// pkg/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"key-dance/pkg/models"
	"key-dance/pkg/pipeline"
	"key-dance/pkg/recognition"
	"key-dance/pkg/staff"
	"key-dance/pkg/storage"
)

// Recognizer is satisfied by *recognition.Service.
type Recognizer interface {
	RecognizeBase64(ctx context.Context, data string) (*models.RecognitionResult, error)
}

type SongCatalog interface {
	Get(songID string) (*models.SongRecord, error)
	Recent(limit int) ([]*models.SongRecord, error)
}

type JobSubmitter interface {
	Submit(job *pipeline.Job) error
}

type Handlers struct {
	recognizer Recognizer
	catalog    SongCatalog
	staff      *staff.Generator
	jobs       JobSubmitter
	logger     *zap.Logger
}

func NewHandlers(recognizer Recognizer, catalog SongCatalog, generator *staff.Generator, jobs JobSubmitter, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		recognizer: recognizer,
		catalog:    catalog,
		staff:      generator,
		jobs:       jobs,
		logger:     logger,
	}
}

func (h *Handlers) RecognizeHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Received audio recognition request", zap.String("request_id", RequestID(r.Context())))

	var audio models.AudioData
	if err := json.NewDecoder(r.Body).Decode(&audio); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := h.recognizer.RecognizeBase64(r.Context(), audio.Data)
	if err != nil {
		writeRecognitionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeRecognitionError(w http.ResponseWriter, err error) {
	var re *recognition.Error
	if !errors.As(err, &re) {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Error(w, re.Message, recognition.HTTPStatus(err))
}

func (h *Handlers) StaffHandler(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["songId"]
	h.logger.Info("Received staff notation request", zap.String("song_id", songID))

	var title string
	if h.catalog != nil {
		rec, err := h.catalog.Get(songID)
		switch {
		case err == nil:
			title = rec.Title
		case !errors.Is(err, storage.ErrSongNotFound):
			h.logger.Warn("catalog lookup failed", zap.String("song_id", songID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, h.staff.Generate(songID, title))
}

func (h *Handlers) SongsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if h.catalog == nil {
		http.Error(w, "Song catalog unavailable", http.StatusServiceUnavailable)
		return
	}

	songs, err := h.catalog.Recent(limit)
	if err != nil {
		h.logger.Error("failed to list songs", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"songs": songs,
		"count": len(songs),
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
