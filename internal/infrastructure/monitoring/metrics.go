package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Job metrics
	JobsSubmitted prometheus.Counter
	JobsActive    prometheus.Gauge
	JobsFinished  *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec

	// Capture metrics
	CacheLookups       *prometheus.CounterVec
	ExtractionFailures *prometheus.CounterVec

	// Provider metrics
	ProviderCalls    *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	startTime time.Time

	// Snapshot for the JSON health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current values for the JSON health endpoint
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	ActiveJobs    int64   `json:"active_jobs"`
	CompletedJobs int64   `json:"completed_jobs"`
	FailedJobs    int64   `json:"failed_jobs"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecloner_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitecloner_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitecloner_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		JobsSubmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sitecloner_jobs_submitted_total",
				Help: "Total number of clone jobs submitted",
			},
		),
		JobsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitecloner_jobs_active",
				Help: "Number of clone jobs not yet terminal",
			},
		),
		JobsFinished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecloner_jobs_finished_total",
				Help: "Total number of clone jobs reaching a terminal status",
			},
			[]string{"status"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitecloner_stage_duration_seconds",
				Help:    "Duration of scrape and generate stages in seconds",
				Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"stage", "status"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecloner_context_cache_lookups_total",
				Help: "Design context cache lookups by result",
			},
			[]string{"result"},
		),
		ExtractionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecloner_extraction_failures_total",
				Help: "Extraction steps that failed and were skipped",
			},
			[]string{"step"},
		),

		ProviderCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecloner_provider_calls_total",
				Help: "Total number of generation provider calls",
			},
			[]string{"provider", "status"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitecloner_provider_duration_seconds",
				Help:    "Generation provider call duration in seconds",
				Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120, 180},
			},
			[]string{"provider"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitecloner_ws_connections",
				Help: "Number of active job stream connections",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "sitecloner_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// JobSubmitted records a new job entering the pipeline
func (m *Metrics) JobSubmitted() {
	m.JobsSubmitted.Inc()
	m.JobsActive.Inc()

	m.mu.Lock()
	m.snapshot.ActiveJobs++
	m.mu.Unlock()
}

// JobFinished records a job reaching completed or failed
func (m *Metrics) JobFinished(status string) {
	m.JobsFinished.WithLabelValues(status).Inc()
	m.JobsActive.Dec()

	m.mu.Lock()
	m.snapshot.ActiveJobs--
	switch status {
	case "completed":
		m.snapshot.CompletedJobs++
	case "failed":
		m.snapshot.FailedJobs++
	}
	m.mu.Unlock()
}

// RecordCacheLookup records a design context cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordExtractionFailure records a skipped extraction step
func (m *Metrics) RecordExtractionFailure(step string) {
	m.ExtractionFailures.WithLabelValues(step).Inc()
}

// RecordProviderCall records a generation provider call
func (m *Metrics) RecordProviderCall(provider, status string, duration time.Duration) {
	m.ProviderCalls.WithLabelValues(provider, status).Inc()
	m.ProviderDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// IncWSConnections increments job stream connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements job stream connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// Snapshot returns a copy of the current values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
