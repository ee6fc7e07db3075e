// Package metrics exposes Prometheus collectors for the alert relay service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	webhookRequestsTotal        *prometheus.CounterVec
	alertsExtractedTotal        prometheus.Counter
	articleFetchesTotal         *prometheus.CounterVec
	articleFetchDurationSeconds *prometheus.HistogramVec
	aiExtractionsTotal          *prometheus.CounterVec
	submissionsTotal            *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		webhookRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alertrelay_webhook_requests_total",
				Help: "Total number of webhook requests, labeled by response status.",
			},
			[]string{"status"},
		)

		alertsExtractedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "alertrelay_alerts_extracted_total",
				Help: "Total number of alerts extracted from notification emails.",
			},
		)

		articleFetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alertrelay_article_fetches_total",
				Help: "Total number of article fetches, labeled by strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		)

		articleFetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alertrelay_article_fetch_duration_seconds",
				Help:    "Histogram of article fetch latencies, labeled by strategy.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"strategy"},
		)

		aiExtractionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alertrelay_ai_extractions_total",
				Help: "Total number of AI extraction attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		submissionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alertrelay_submissions_total",
				Help: "Total number of record store submissions, labeled by outcome.",
			},
			[]string{"outcome"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveWebhook increments the webhook request counter.
func ObserveWebhook(status string) {
	webhookRequestsTotal.WithLabelValues(status).Inc()
}

// ObserveAlertsExtracted adds to the extracted alert counter.
func ObserveAlertsExtracted(n int) {
	if n > 0 {
		alertsExtractedTotal.Add(float64(n))
	}
}

// ObserveFetch records an article fetch attempt and its latency.
func ObserveFetch(strategy string, succeeded bool, duration time.Duration) {
	outcome := "failure"
	if succeeded {
		outcome = "success"
	}
	articleFetchesTotal.WithLabelValues(strategy, outcome).Inc()
	articleFetchDurationSeconds.WithLabelValues(strategy).Observe(duration.Seconds())
}

// ObserveAIExtraction increments the AI extraction counter for the given outcome.
func ObserveAIExtraction(outcome string) {
	aiExtractionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSubmission increments the submission counter.
func ObserveSubmission(succeeded bool) {
	outcome := "failure"
	if succeeded {
		outcome = "success"
	}
	submissionsTotal.WithLabelValues(outcome).Inc()
}
