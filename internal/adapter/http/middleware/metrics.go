package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/cashflow/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses path parameters to keep label cardinality low.
// /api/v1/entries/6f1c... -> /api/v1/entries/:id
// /api/v1/consolidations/daily/2025-01-02 -> /api/v1/consolidations/daily/:date
func normalizePath(path string) string {
	const (
		entriesPrefix = "/api/v1/entries/"
		dailyPrefix   = "/api/v1/consolidations/daily/"
	)

	switch {
	case strings.HasPrefix(path, entriesPrefix) && len(path) > len(entriesPrefix):
		return entriesPrefix + ":id"
	case strings.HasPrefix(path, dailyPrefix) && len(path) > len(dailyPrefix):
		return dailyPrefix + ":date"
	}

	return path
}
