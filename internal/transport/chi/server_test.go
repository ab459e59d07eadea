package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

func TestAsk(t *testing.T) {
	handler := newTestHandler(
		&mockAssembler{actx: assembledContext()},
		&mockCompleter{text: "Day 1: Old Quarter stroll."},
		&mockPinger{},
	)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"query":"romantic hanoi"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var resp struct {
		Answer string              `json:"answer"`
		Stats  domain.ContextStats `json:"stats"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Answer != "Day 1: Old Quarter stroll." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if resp.Stats.Matches != 1 || resp.Stats.Theme != "romantic" {
		t.Errorf("unexpected stats: %+v", resp.Stats)
	}
	if resp.Stats.Steps[domain.StepEmbedding] != domain.StepOK {
		t.Errorf("step statuses not serialized: %+v", resp.Stats.Steps)
	}
}

func TestAsk_InvalidBody(t *testing.T) {
	handler := newTestHandler(&mockAssembler{actx: assembledContext()}, &mockCompleter{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error != "invalid request body" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestAsk_EmptyQuery(t *testing.T) {
	handler := newTestHandler(
		&mockAssembler{err: domain.ErrEmptyQuery},
		&mockCompleter{},
		&mockPinger{},
	)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"query":""}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error != domain.ErrEmptyQuery.Error() {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestAsk_CompletionFailure(t *testing.T) {
	handler := newTestHandler(
		&mockAssembler{actx: assembledContext()},
		&mockCompleter{err: domain.ErrCompletionProviderError},
		&mockPinger{},
	)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"query":"romantic hanoi"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error != domain.ErrCompletionProviderError.Error() {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		handler := newTestHandler(&mockAssembler{}, &mockCompleter{}, &mockPinger{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Status != "ok" || resp.Checks["database"] != "ok" {
			t.Errorf("unexpected report: %+v", resp)
		}
	})

	t.Run("degraded", func(t *testing.T) {
		handler := newTestHandler(&mockAssembler{}, &mockCompleter{}, &mockPinger{err: domain.ErrVectorSearchUnavailable})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}

		var resp struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Status != "degraded" || resp.Checks["database"] != "error" {
			t.Errorf("unexpected report: %+v", resp)
		}
	})
}

func TestIndexServed(t *testing.T) {
	handler := newTestHandler(&mockAssembler{}, &mockCompleter{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("expected html content type, got %q", rec.Header().Get("Content-Type"))
	}
}

func TestMetricsServed(t *testing.T) {
	handler := newTestHandler(&mockAssembler{}, &mockCompleter{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_") {
		t.Error("expected prometheus exposition output")
	}
}
