package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	navigationDecisions   *prometheus.CounterVec
	profileLookupFailures prometheus.Counter
	licenseUploads        *prometheus.CounterVec
	authAttemptsTotal     *prometheus.CounterVec
	auditEventsTotal      *prometheus.CounterVec
	summaryRequestsTotal  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		// HTTP request metrics
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		// Onboarding metrics
		navigationDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navigation_decisions_total",
				Help: "Navigation decisions by guard outcome, stage and whether the route was allowed",
			},
			[]string{"outcome", "stage", "allowed"},
		),
		profileLookupFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "profile_lookup_failures_total",
				Help: "Profile reads that failed and were routed to login",
			},
		),
		licenseUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "license_uploads_total",
				Help: "License upload attempts by result",
			},
			[]string{"status"},
		),

		// Authentication metrics
		authAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"method", "status"},
		),

		// Audit log metrics
		auditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_events_total",
				Help: "Total number of audit events",
			},
			[]string{"event_type", "success"},
		),

		summaryRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consultation_summaries_total",
				Help: "Consultation summary requests by result",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.navigationDecisions,
		m.profileLookupFailures,
		m.licenseUploads,
		m.authAttemptsTotal,
		m.auditEventsTotal,
		m.summaryRequestsTotal,
	)

	return m
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordNavigationDecision(outcome, stage string, allowed bool) {
	m.navigationDecisions.WithLabelValues(outcome, stage, strconv.FormatBool(allowed)).Inc()
}

func (m *Metrics) RecordProfileLookupFailure() {
	m.profileLookupFailures.Inc()
}

// RecordLicenseUpload takes one of uploaded, retry or failed.
func (m *Metrics) RecordLicenseUpload(status string) {
	m.licenseUploads.WithLabelValues(status).Inc()
}

// RecordAuthAttempt records authentication attempt metrics
func (m *Metrics) RecordAuthAttempt(method, status string) {
	m.authAttemptsTotal.WithLabelValues(method, status).Inc()
}

// RecordAuditEvent records audit event metrics
func (m *Metrics) RecordAuditEvent(eventType string, success bool) {
	m.auditEventsTotal.WithLabelValues(eventType, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) RecordSummaryRequest(status string) {
	m.summaryRequestsTotal.WithLabelValues(status).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// HTTPMiddleware records request metrics labelled by route template.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		m.RecordHTTPRequest(r.Method, endpointLabel(r), strconv.Itoa(wrapper.statusCode), time.Since(start))
	})
}

func endpointLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
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
