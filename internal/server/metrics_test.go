package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMetrics_RecordRequestClasses(t *testing.T) {
	m := &Metrics{}
	m.RecordRequest(200)
	m.RecordRequest(404)
	m.RecordRequest(500)

	snap := m.Snapshot()
	if snap["requests_total"] != 3 {
		t.Errorf("expected 3 requests, got %d", snap["requests_total"])
	}
	if snap["request_errors_4xx"] != 1 || snap["request_errors_5xx"] != 1 {
		t.Errorf("unexpected error counters: %+v", snap)
	}
}

func TestMetrics_LoginOutcomes(t *testing.T) {
	m := &Metrics{}
	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)

	snap := m.Snapshot()
	if snap["login_attempts_total"] != 3 || snap["login_success_total"] != 1 || snap["login_failures_total"] != 2 {
		t.Errorf("unexpected login counters: %+v", snap)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	before := GetMetrics().Snapshot()["requests_total"]

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/items", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rr.Code)
	}

	var snap map[string]int64
	if err := json.NewDecoder(rr.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap["requests_total"] <= before {
		t.Errorf("expected requests_total to grow past %d, got %d", before, snap["requests_total"])
	}
}
