package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockMetricsRecorder は関数フィールドで挙動を差し替えるモック。
type mockMetricsRecorder struct {
	statuses  []int
	latencies []time.Duration
}

func (m *mockMetricsRecorder) RecordHTTPStatus(statusCode int) {
	m.statuses = append(m.statuses, statusCode)
}

func (m *mockMetricsRecorder) RecordRequestLatency(duration time.Duration) {
	m.latencies = append(m.latencies, duration)
}

func TestMetricsMiddleware_RecordsStatusAndLatency(t *testing.T) {
	recorder := &mockMetricsRecorder{}

	handler := NewMetricsMiddleware(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/people/99", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if len(recorder.statuses) != 1 || recorder.statuses[0] != http.StatusNotFound {
		t.Errorf("recorded statuses = %v, want [404]", recorder.statuses)
	}
	if len(recorder.latencies) != 1 {
		t.Fatalf("recorded latencies = %v, want exactly one entry", recorder.latencies)
	}
	if recorder.latencies[0] < 0 {
		t.Errorf("latency should be non-negative, got %v", recorder.latencies[0])
	}
}

func TestMetricsMiddleware_DefaultsTo200WithoutWriteHeader(t *testing.T) {
	recorder := &mockMetricsRecorder{}

	handler := NewMetricsMiddleware(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if len(recorder.statuses) != 1 || recorder.statuses[0] != http.StatusOK {
		t.Errorf("recorded statuses = %v, want [200]", recorder.statuses)
	}
}
