package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hivest/hivest/internal/app"
	"github.com/hivest/hivest/internal/common"
)

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(&mockAnalysisService{}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCorrelationIDGenerated(t *testing.T) {
	h := newTestServer(&mockAnalysisService{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("no correlation ID set")
	}
}

func TestCorrelationIDPassthrough(t *testing.T) {
	h := newTestServer(&mockAnalysisService{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-ID"); got != "abc-123" {
		t.Errorf("X-Correlation-ID = %q, want abc-123", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(&mockAnalysisService{})

	mux := http.NewServeMux()
	mux.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	h := applyMiddleware(mux, s.logger)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal server error") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLoggingMiddlewareEmitsRequestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewLoggerWithOutput("debug", &buf)
	a := &app.App{
		Config:          common.NewDefaultConfig(),
		AnalysisService: &mockAnalysisService{},
		Logger:          logger,
		StartupTime:     time.Now(),
	}
	h := NewServer(a).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := buf.String()
	if !strings.Contains(out, `"path":"/api/health"`) {
		t.Errorf("request log missing path: %s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Errorf("request log missing status: %s", out)
	}
}

func TestAnalyzeThroughFullStack(t *testing.T) {
	mock := &mockAnalysisService{}
	h := newTestServer(mock).Handler()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"portfolio":"AAPL:1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if mock.lastContext == nil || len(mock.lastContext.Positions) != 1 {
		t.Fatalf("collaborator context = %+v", mock.lastContext)
	}
}
