package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics records calls made to the REST backend.
type BackendMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewBackendMetrics registers the backend call metrics on the provided registerer.
func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	if reg == nil {
		return &BackendMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of backend API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_success",
		Help: "Backend API calls answered with a 2xx status.",
	}, []string{"resource", "method"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_failure",
		Help: "Backend API calls that failed or answered non-2xx.",
	}, []string{"resource", "method", "status"})
	reg.MustRegister(duration, success, failure)
	return &BackendMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records one call. status is 0 when the backend was unreachable.
func (b *BackendMetrics) Observe(method, path string, status int, elapsed time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	resource := ResourceLabel(path)
	b.duration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
	if status >= 200 && status < 300 {
		b.success.WithLabelValues(resource, method).Inc()
		return
	}
	b.failure.WithLabelValues(resource, method, statusLabel(status)).Inc()
}

// ResourceLabel reduces a request path to its first segment so ids never become labels.
func ResourceLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

func statusLabel(status int) string {
	if status == 0 {
		return "unreachable"
	}
	return strconv.Itoa(status)
}
