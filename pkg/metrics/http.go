package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records requests served by the console.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	denied   *prometheus.CounterVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_http_request_duration_seconds",
		Help:    "Duration of console HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_http_requests",
		Help: "Console HTTP requests by route and status.",
	}, []string{"route", "method", "status"})
	denied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_screen_redirects",
		Help: "Requests redirected by screen gating.",
	}, []string{"screen", "redirect"})
	reg.MustRegister(duration, requests, denied)
	return &HTTPMetrics{duration: duration, requests: requests, denied: denied}
}

// ObserveRequest records a served request. route is the chi route pattern.
func (h *HTTPMetrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	h.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
	h.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// IncRedirect counts a gated request turned into a redirect.
func (h *HTTPMetrics) IncRedirect(screen, redirect string) {
	if h == nil || h.denied == nil {
		return
	}
	h.denied.WithLabelValues(screen, redirect).Inc()
}
