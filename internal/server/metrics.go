package server

import (
	"net/http"
	"sync"
)

// Metrics holds in-process application counters exposed at /metrics.
type Metrics struct {
	mu sync.RWMutex

	// Auth metrics
	signupsTotal         int64
	signupsRejectedTotal int64
	loginAttemptsTotal   int64
	loginSuccessTotal    int64
	loginFailuresTotal   int64

	// Item metrics
	itemsCreatedTotal int64
	itemsDeletedTotal int64
	uploadBytesTotal  int64
	uploadErrorsTotal int64

	// System metrics
	requestsTotal    int64
	requestErrors4xx int64
	requestErrors5xx int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the global metrics instance.
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordSignup records a successful signup.
func (m *Metrics) RecordSignup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signupsTotal++
}

// RecordSignupRejected records a signup refused for validation or conflict.
func (m *Metrics) RecordSignupRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signupsRejectedTotal++
}

// RecordLogin records a login attempt and its outcome.
func (m *Metrics) RecordLogin(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginAttemptsTotal++
	if ok {
		m.loginSuccessTotal++
	} else {
		m.loginFailuresTotal++
	}
}

// RecordItemCreated records a successful item upload.
func (m *Metrics) RecordItemCreated(uploadBytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itemsCreatedTotal++
	m.uploadBytesTotal += uploadBytes
}

// RecordUploadError records a failed blob store write.
func (m *Metrics) RecordUploadError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErrorsTotal++
}

// RecordItemDeleted records a successful item deletion.
func (m *Metrics) RecordItemDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itemsDeletedTotal++
}

// RecordRequest records a completed HTTP request by status class.
func (m *Metrics) RecordRequest(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsTotal++
	switch {
	case status >= 500:
		m.requestErrors5xx++
	case status >= 400:
		m.requestErrors4xx++
	}
}

// Snapshot returns a copy of all counters for the /metrics endpoint.
func (m *Metrics) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]int64{
		"signups_total":          m.signupsTotal,
		"signups_rejected_total": m.signupsRejectedTotal,
		"login_attempts_total":   m.loginAttemptsTotal,
		"login_success_total":    m.loginSuccessTotal,
		"login_failures_total":   m.loginFailuresTotal,
		"items_created_total":    m.itemsCreatedTotal,
		"items_deleted_total":    m.itemsDeletedTotal,
		"upload_bytes_total":     m.uploadBytesTotal,
		"upload_errors_total":    m.uploadErrorsTotal,
		"requests_total":         m.requestsTotal,
		"request_errors_4xx":     m.requestErrors4xx,
		"request_errors_5xx":     m.requestErrors5xx,
	}
}

// handleMetrics serves the counter snapshot as JSON.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, GetMetrics().Snapshot())
}
