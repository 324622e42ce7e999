// health.go — /health/live, /health/ready и /metrics.
package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/docvault/internal/config"
)

const serviceName = "docvault"

// Статусы проверок готовности.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// ReadinessChecker — проверка одной зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус (ok, degraded, fail) и пояснение.
	CheckReady() (status, message string)
}

type namedCheck struct {
	name    string
	checker ReadinessChecker
}

// HealthHandler отвечает на health-запросы kubelet и отдаёт метрики.
type HealthHandler struct {
	checks      []namedCheck
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик с проверками postgresql и storage.
// nil-проверка считается проваленной.
func NewHealthHandler(pgChecker, storageChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		checks: []namedCheck{
			{name: "postgresql", checker: pgChecker},
			{name: "storage", checker: storageChecker},
		},
		promHandler: promhttp.Handler(),
	}
}

type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

type healthReadyResponse struct {
	healthLiveResponse
	Checks map[string]healthCheckResult `json:"checks"`
}

func newLiveResponse(status string) healthLiveResponse {
	return healthLiveResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}
}

// HealthLive — процесс жив, зависимости не проверяются.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newLiveResponse(statusOK))
}

// HealthReady — 200 при ok/degraded, 503 если хотя бы одна проверка fail.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	checks := make(map[string]healthCheckResult, len(h.checks))
	statuses := make([]string, 0, len(h.checks))
	for _, c := range h.checks {
		res := runCheck(c.checker)
		checks[c.name] = res
		statuses = append(statuses, res.Status)
	}

	resp := healthReadyResponse{
		healthLiveResponse: newLiveResponse(overallStatus(statuses...)),
		Checks:             checks,
	}

	code := http.StatusOK
	if resp.Status == statusFail {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// GetMetrics — Prometheus.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

func runCheck(c ReadinessChecker) healthCheckResult {
	if c == nil {
		return healthCheckResult{Status: statusFail, Message: "не инициализирован"}
	}
	status, msg := c.CheckReady()
	return healthCheckResult{Status: status, Message: msg}
}

// overallStatus: fail важнее degraded, degraded важнее ok.
func overallStatus(statuses ...string) string {
	result := statusOK
	for _, s := range statuses {
		switch s {
		case statusFail:
			return statusFail
		case statusDegraded:
			result = statusDegraded
		}
	}
	return result
}
