package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strategy-engine/domain"
	"strategy-engine/repository"
	"strategy-engine/service"
)

func newTestHandler() *AnalysisHandler {
	repo := repository.NewAnalysisRepositoryMemory()
	cache := repository.NewMockCache()
	svc := service.NewAnalysisService(service.Options{}, repo, cache, time.Hour)
	return NewAnalysisHandler(svc)
}

func TestAnalyzeHandler_OK(t *testing.T) {

	handler := newTestHandler()

	body := []byte(`{
		"income": [
			{"employer": "Acme Corp", "payDate": "2026-08-14T00:00:00Z", "grossPay": 6500, "netPay": 5000, "frequency": "monthly"}
		],
		"debt": [
			{"creditor": "Visa", "type": "credit_card", "balance": 9000, "minimumPayment": 270, "annualRatePct": 21}
		]
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/analysis",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var analysis domain.ComprehensiveAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if analysis.AnalysisID == "" {
		t.Error("expected a non-empty analysis id")
	}
	if len(analysis.Scenarios) == 0 {
		t.Error("expected scenarios in the response")
	}
}

func TestAnalyzeHandler_MethodNotAllowed(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/analysis", nil)
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestAnalyzeHandler_BadRequest(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(
		http.MethodPost,
		"/analysis",
		bytes.NewBufferString("{not json"),
	)
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeHandler_InvalidFieldReported(t *testing.T) {

	handler := newTestHandler()

	body := []byte(`{
		"debt": [
			{"creditor": "Visa", "type": "credit_card", "balance": -100, "minimumPayment": 25, "annualRatePct": 21}
		]
	}`)

	req := httptest.NewRequest(http.MethodPost, "/analysis", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var payload struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if payload.Field != "debt[0].balance" {
		t.Errorf("expected field debt[0].balance, got %q", payload.Field)
	}
}

func TestHealthHandler(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
