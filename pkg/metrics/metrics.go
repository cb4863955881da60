package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Analytics API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Workflow metrics
	WorkflowTransitions *prometheus.CounterVec
	AnalysesInProgress  *prometheus.GaugeVec
	AnalysesTotal       *prometheus.CounterVec
	StaleCompletions    *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// the server and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ExternalAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_api_calls_total",
				Help: "Total number of analytics API calls",
			},
			[]string{"endpoint", "status"},
		),

		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_api_duration_seconds",
				Help:    "Analytics API call duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		ExternalAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_api_failures_total",
				Help: "Total number of analytics API failures",
			},
			[]string{"endpoint", "error_type"},
		),

		WorkflowTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaigndash_workflow_transitions_total",
				Help: "Total number of workflow state transitions",
			},
			[]string{"workflow", "transition"},
		),

		AnalysesInProgress: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "campaigndash_analyses_in_progress",
				Help: "Number of compare or benchmark analyses in flight",
			},
			[]string{"workflow"},
		),

		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaigndash_analyses_total",
				Help: "Total number of completed analyses",
			},
			[]string{"workflow", "status"},
		),

		StaleCompletions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaigndash_stale_completions_total",
				Help: "Completions discarded because their selection was superseded",
			},
			[]string{"workflow", "stage"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Analytics API call metrics
func (m *Metrics) RecordExternalAPICall(endpoint, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(endpoint, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// Analytics API failure metrics
func (m *Metrics) RecordExternalAPIFailure(endpoint, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(endpoint, errorType).Inc()
}

func (m *Metrics) RecordTransition(workflow, transition string) {
	m.WorkflowTransitions.WithLabelValues(workflow, transition).Inc()
}

func (m *Metrics) RecordStaleCompletion(workflow, stage string) {
	m.StaleCompletions.WithLabelValues(workflow, stage).Inc()
}

func (m *Metrics) IncAnalysesInProgress(workflow string) {
	m.AnalysesInProgress.WithLabelValues(workflow).Inc()
}

// status is "success" or "failed"
func (m *Metrics) DecAnalysesInProgress(workflow, status string) {
	m.AnalysesInProgress.WithLabelValues(workflow).Dec()
	m.AnalysesTotal.WithLabelValues(workflow, status).Inc()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
