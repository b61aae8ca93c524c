package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	submissionsTotal     *prometheus.CounterVec
	relayAttemptsTotal   *prometheus.CounterVec
	relayDurationSeconds *prometheus.HistogramVec
)

// Submission outcomes recorded by AssessmentSubmissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RegisterMetrics initialises the Prometheus collectors used by the intake service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_requests_total",
			Help: "Total number of intake API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_latency_seconds",
			Help:    "Latency distribution for intake API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_submissions_total",
			Help: "Assessment submissions by outcome.",
		}, []string{"outcome"})

		relayAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_relay_total",
			Help: "Relay attempts to remote stores by target and status.",
		}, []string{"target", "status"})

		relayDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assessment_relay_duration_seconds",
			Help:    "Duration of relay attempts to remote stores.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"target"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, submissionsTotal, relayAttemptsTotal, relayDurationSeconds)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// AssessmentSubmissions exposes the submission outcome counter.
func AssessmentSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsTotal
}

// RelayAttempts exposes the relay outcome counter.
func RelayAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return relayAttemptsTotal
}

// RelayDuration exposes the relay latency histogram.
func RelayDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return relayDurationSeconds
}
