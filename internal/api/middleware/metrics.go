// metrics.go — HTTP-метрики docvault: dv_http_requests_total и
// dv_http_request_duration_seconds. Путь в лейбле нормализуется,
// чтобы ID файлов не раздували кардинальность.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dv_http_requests_total",
			Help: "Количество HTTP-запросов к docvault",
		},
		[]string{"method", "path", "status"},
	)

	// Длинные загрузки и скачивания не помещаются в DefBuckets.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dv_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к docvault, секунды",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware считает запросы и их длительность.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(statusOf(ww))).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath: /files/42/download → /files/{id}/download,
// неизвестные пути → "other".
func normalizePath(path string) string {
	switch path {
	case "/", "/files/", "/files/upload", "/health/live", "/health/ready", "/metrics":
		return path
	}

	rest, ok := strings.CutPrefix(path, "/files/")
	if !ok {
		return "other"
	}
	id, action, found := strings.Cut(rest, "/")
	if !found || id == "" {
		return "other"
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "other"
	}
	switch action {
	case "analyze", "analysis", "download":
		return "/files/{id}/" + action
	}
	return "other"
}
