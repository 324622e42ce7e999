package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubChecker struct{ status, message string }

func (c stubChecker) CheckReady() (string, string) { return c.status, c.message }

func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp healthLiveResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Service != "docvault" {
		t.Errorf("ответ = %+v", resp)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		pg         ReadinessChecker
		storage    ReadinessChecker
		wantStatus int
		wantResult string
	}{
		{"всё доступно", stubChecker{"ok", ""}, stubChecker{"ok", ""}, http.StatusOK, "ok"},
		{"БД недоступна", stubChecker{"fail", "refused"}, stubChecker{"ok", ""}, http.StatusServiceUnavailable, "fail"},
		{"хранилище недоступно", stubChecker{"ok", ""}, stubChecker{"fail", "read-only"}, http.StatusServiceUnavailable, "fail"},
		{"degraded", stubChecker{"degraded", "slow"}, stubChecker{"ok", ""}, http.StatusOK, "degraded"},
		{"не инициализирован", nil, stubChecker{"ok", ""}, http.StatusServiceUnavailable, "fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.pg, tt.storage)

			rec := httptest.NewRecorder()
			h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, ожидается %d", rec.Code, tt.wantStatus)
			}
			var resp healthReadyResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Status != tt.wantResult {
				t.Errorf("итоговый статус = %s, ожидается %s", resp.Status, tt.wantResult)
			}
			for _, name := range []string{"postgresql", "storage"} {
				if _, ok := resp.Checks[name]; !ok {
					t.Errorf("нет проверки %q в ответе", name)
				}
			}
		})
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		statuses []string
		want     string
	}{
		{nil, "ok"},
		{[]string{"ok", "ok"}, "ok"},
		{[]string{"degraded", "ok"}, "degraded"},
		{[]string{"degraded", "fail"}, "fail"},
		{[]string{"fail", "degraded"}, "fail"},
	}
	for _, tt := range tests {
		if got := overallStatus(tt.statuses...); got != tt.want {
			t.Errorf("overallStatus(%v) = %s, ожидается %s", tt.statuses, got, tt.want)
		}
	}
}
