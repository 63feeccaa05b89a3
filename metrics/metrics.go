package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mediaProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_processed_total",
		Help: "Media items processed, by kind and outcome",
	}, []string{"kind", "status"})

	modelRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "model_request_duration_seconds",
		Help:    "Latency of remote model calls",
		Buckets: prometheus.DefBuckets,
	})

	synthesisAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synthesis_attempts_total",
		Help: "Final response generation attempts, including empty-text retries",
	})

	synthesisResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synthesis_results_total",
		Help: "Final response outcomes, by status",
	}, []string{"status"})
)

// MediaProcessed records the outcome of one media item.
func MediaProcessed(kind, status string) {
	mediaProcessed.WithLabelValues(kind, status).Inc()
}

// ModelRequest records the latency of one remote model call.
func ModelRequest(d time.Duration) {
	modelRequestDuration.Observe(d.Seconds())
}

// SynthesisAttempt records one generation attempt.
func SynthesisAttempt() {
	synthesisAttempts.Inc()
}

// SynthesisResult records the terminal outcome of a synthesis run.
func SynthesisResult(status string) {
	synthesisResults.WithLabelValues(status).Inc()
}
