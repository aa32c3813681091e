package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires the API routes. metrics and staticDir may be empty.
func NewRouter(h *Handlers, metrics http.Handler, staticDir string, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/api/recognize", h.RecognizeHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/staff/{songId}", h.StaffHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", h.SongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/ws", h.WebSocketHandler)
	router.HandleFunc("/healthz", HealthHandler).Methods(http.MethodGet)

	if metrics != nil {
		router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}
	if staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return RequestLogger(logger)(CORS(router))
}
