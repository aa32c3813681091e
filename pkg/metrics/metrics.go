package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"key-dance/pkg/models"
	"key-dance/pkg/recognition"
)

// Collector holds the service's prometheus collectors on its own registry.
type Collector struct {
	registry        *prometheus.Registry
	recognitions    *prometheus.CounterVec
	providerLatency prometheus.Histogram
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		recognitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keydance_recognitions_total",
				Help: "Recognition requests by outcome",
			},
			[]string{"outcome"},
		),
		providerLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "keydance_provider_request_duration_seconds",
				Help:    "Round-trip time of identify requests to the provider",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	c.registry.MustRegister(c.recognitions, c.providerLatency)
	return c
}

// ObserveRecognition is a recognition.Observer.
func (c *Collector) ObserveRecognition(result *models.RecognitionResult, err error) {
	outcome := "success"
	if err != nil {
		outcome = recognition.KindOf(err).String()
	}
	c.recognitions.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveProviderLatency(d time.Duration) {
	c.providerLatency.Observe(d.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
