package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ssargent/dmidb/pkg/smbios"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Snapshot operation metrics
	snapshotOperationsTotal   *prometheus.CounterVec
	snapshotOperationDuration *prometheus.HistogramVec
	snapshotsArchived         prometheus.Gauge

	// Table decoding metrics
	structuresDecodedTotal *prometheus.CounterVec
	walkDiagnosticsTotal   *prometheus.CounterVec

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		// HTTP request metrics
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dmidb_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dmidb_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dmidb_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Snapshot operation metrics
		snapshotOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dmidb_snapshot_operations_total",
				Help: "Total number of snapshot archive operations",
			},
			[]string{"operation", "status"},
		),

		snapshotOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dmidb_snapshot_operation_duration_seconds",
				Help:    "Snapshot archive operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		snapshotsArchived: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dmidb_snapshots_archived",
				Help: "Number of snapshots in the archive",
			},
		),

		// Table decoding metrics
		structuresDecodedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dmidb_structures_decoded_total",
				Help: "Total number of structures decoded from captured tables, by type",
			},
			[]string{"type"},
		),

		walkDiagnosticsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dmidb_walk_diagnostics_total",
				Help: "Total number of captured tables whose walk stopped early, by error kind",
			},
			[]string{"kind"},
		),

		// Authentication metrics
		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dmidb_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		// Health check metrics
		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dmidb_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSnapshotOperation records an archive operation
func (m *Metrics) RecordSnapshotOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.snapshotOperationsTotal.WithLabelValues(operation, status).Inc()
	m.snapshotOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordTable counts the structures of a freshly captured table and its walk
// diagnostic, if any
func (m *Metrics) RecordTable(t *smbios.Table) {
	for typ, n := range t.CountByType() {
		m.structuresDecodedTotal.WithLabelValues(typ.String()).Add(float64(n))
	}
	if err := t.Err(); err != nil {
		kind := "unknown"
		var decodeErr *smbios.Error
		if errors.As(err, &decodeErr) {
			kind = string(decodeErr.Kind)
		}
		m.walkDiagnosticsTotal.WithLabelValues(kind).Inc()
	}
}

// UpdateArchiveStats updates the archived snapshot gauge
func (m *Metrics) UpdateArchiveStats(snapshots int) {
	m.snapshotsArchived.Set(float64(snapshots))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Record request in flight
		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// Create response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
