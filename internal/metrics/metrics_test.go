package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCommentOperation(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	m.RecordCommentOperation("insert", ResultSuccess)
	m.RecordCommentOperation("insert", ResultSuccess)
	m.RecordCommentOperation("delete", ResultForbidden)

	if got := testutil.ToFloat64(m.commentOpsTotal.WithLabelValues("insert", ResultSuccess)); got != 2 {
		t.Errorf("Expected 2 inserts, got %v", got)
	}
	if got := testutil.ToFloat64(m.commentOpsTotal.WithLabelValues("delete", ResultForbidden)); got != 1 {
		t.Errorf("Expected 1 forbidden delete, got %v", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	m.RecordHTTPRequest("POST", "/v1/comments/insert", 200, 15*time.Millisecond)
	m.RecordHTTPRequest("GET", "", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/v1/comments/insert", "200")); got != 1 {
		t.Errorf("Expected 1 request, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("Expected unmatched route label, got %v", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	m.RecordCommentOperation("insert", ResultSuccess)
	m.RecordNotification(false)
}

func TestHandler(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m.RecordNotification(true)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `aec_notifications_total{status="success"} 1`) {
		t.Errorf("Expected notification counter in output:\n%s", w.Body.String())
	}
}
