package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"key-dance/pkg/models"
	"key-dance/pkg/recognition"
)

func TestCollector_ObserveRecognition(t *testing.T) {
	c := NewCollector()

	c.ObserveRecognition(&models.RecognitionResult{SongID: "a"}, nil)
	c.ObserveRecognition(nil, recognition.NoMatch())
	c.ObserveRecognition(nil, recognition.NoMatch())
	c.ObserveRecognition(nil, recognition.ProviderError(3001, "bad key"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.recognitions.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.recognitions.WithLabelValues("no_match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.recognitions.WithLabelValues("provider_error")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveProviderLatency(120 * time.Millisecond)
	c.ObserveRecognition(nil, recognition.TransportError("provider returned status 503", nil))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `keydance_recognitions_total{outcome="transport_error"} 1`)
	assert.Contains(t, body, "keydance_provider_request_duration_seconds_count 1")
}
