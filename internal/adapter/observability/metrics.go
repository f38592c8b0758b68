package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for backend and extraction metrics.
const (
	OutcomeOK          = "ok"
	OutcomeTimeout     = "timeout"
	OutcomeUnavailable = "unavailable"
	OutcomeTransport   = "transport"
	OutcomeError       = "error"
)

var (
	// HTTPRequestsTotal counts requests served by this process.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// BackendRequestsTotal counts calls to the external generation service.
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of backend requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	// BackendRequestDuration observes backend call latency. Generation can
	// legitimately run for minutes, hence the long tail buckets.
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"operation"},
	)

	// ExtractionsTotal counts document extractions by format and outcome.
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total number of document extractions by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	// GeneratedTestCases observes how many cases a successful call returned.
	GeneratedTestCases = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generated_test_cases",
			Help:    "Distribution of test case counts per successful generation",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
)

// InitMetrics registers all metric vectors once per process.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(ExtractionsTotal)
	prometheus.MustRegister(GeneratedTestCases)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveBackendRequest records one backend call.
func ObserveBackendRequest(operation, outcome string, d time.Duration) {
	BackendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	BackendRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveExtraction records one extraction attempt.
func ObserveExtraction(format, outcome string) {
	ExtractionsTotal.WithLabelValues(format, outcome).Inc()
}

// ObserveGeneratedCases records the case count of a successful generation.
func ObserveGeneratedCases(n int) {
	GeneratedTestCases.Observe(float64(n))
}
