// Package metrics holds the process's Prometheus collectors on a private
// registry exposed at /metrics.
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agrirevive"

var (
	registry = prometheus.NewRegistry()

	recommendationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total recommendation submissions.",
	})
	recommendationFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_fallbacks_total",
		Help:      "Submissions answered from the fallback table.",
	})
	medicineLookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "medicine_lookups_total",
		Help:      "Total medicine searches.",
	})
	medicineNotFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "medicine_not_found_total",
		Help:      "Medicine searches without a match.",
	})
	geocodeRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_requests_total",
		Help:      "Outbound geocoding requests.",
	})
	rateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	})
	panicsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Handler panics recovered.",
	})
	llmDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Chat completion round trip latency.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})
)

func init() {
	registry.MustRegister(
		recommendationsTotal,
		recommendationFallbacksTotal,
		medicineLookupsTotal,
		medicineNotFoundTotal,
		geocodeRequestsTotal,
		rateLimitedTotal,
		panicsTotal,
		llmDuration,
	)
}

// IncRecommendations counts recommendation submissions.
func IncRecommendations() { recommendationsTotal.Inc() }

// IncRecommendationFallbacks counts submissions answered from the fallback table.
func IncRecommendationFallbacks() { recommendationFallbacksTotal.Inc() }

// IncMedicineLookups counts medicine searches.
func IncMedicineLookups() { medicineLookupsTotal.Inc() }

// IncMedicineNotFound counts medicine searches that ended without a match.
func IncMedicineNotFound() { medicineNotFoundTotal.Inc() }

// IncGeocodeRequests counts outbound geocoding calls.
func IncGeocodeRequests() { geocodeRequestsTotal.Inc() }

// IncRateLimited counts requests rejected with 429.
func IncRateLimited() { rateLimitedTotal.Inc() }

// IncPanics counts handler panics turned into 500s.
func IncPanics() { panicsTotal.Inc() }

// ObserveLLMDuration records one chat completion round trip.
func ObserveLLMDuration(d time.Duration) {
	llmDuration.Observe(max(d, 0).Seconds())
}

// Handler exposes the registry in the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
