package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

type assistantFake struct {
	searchResult *domain.SearchResult
	searchErr    error
	refineResult *domain.SearchResult
	refineErr    error

	lastSearch domain.SearchRequest
	lastRefine domain.SearchRequest
}

func (f *assistantFake) ProcessSearch(_ context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	f.lastSearch = req
	return f.searchResult, f.searchErr
}

func (f *assistantFake) RefineSearch(_ context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	f.lastRefine = req
	return f.refineResult, f.refineErr
}

func okResult() *domain.SearchResult {
	return &domain.SearchResult{
		Products:       []domain.ProductView{{Title: "Leather Wallet", Score: 0.85}},
		SessionID:      "s-1",
		QueryProcessed: "wallet",
		Suggestions:    []string{"Adjust price range"},
	}
}

func TestSearchEndpoint(t *testing.T) {
	assistant := &assistantFake{searchResult: okResult()}
	handler := NewRouter(assistant, Options{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"leather wallet under $30"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result domain.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.SessionID != "s-1" || len(result.Products) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if assistant.lastSearch.Query != "leather wallet under $30" {
		t.Fatalf("expected forwarded query, got %q", assistant.lastSearch.Query)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRefineEndpointForwardsRefinements(t *testing.T) {
	assistant := &assistantFake{refineResult: okResult()}
	handler := NewRouter(assistant, Options{}).Handler()

	body := `{"query":"leather wallet","session_id":"s-1","features_to_add":["RFID blocking"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/search/refine", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if assistant.lastRefine.SessionID != "s-1" {
		t.Fatalf("expected session id forwarded, got %q", assistant.lastRefine.SessionID)
	}
	if len(assistant.lastRefine.FeaturesToAdd) != 1 || assistant.lastRefine.FeaturesToAdd[0] != "RFID blocking" {
		t.Fatalf("expected features forwarded, got %v", assistant.lastRefine.FeaturesToAdd)
	}
}

func TestSearchSoftFailureStaysOK(t *testing.T) {
	assistant := &assistantFake{searchResult: &domain.SearchResult{
		Products:    []domain.ProductView{},
		SessionID:   "s-1",
		Suggestions: []string{},
		Error:       "failed to parse query: model offline",
	}}
	handler := NewRouter(assistant, Options{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"wallet"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("soft pipeline failure must stay 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "failed to parse query") {
		t.Fatalf("expected soft error in body, got %s", rec.Body.String())
	}
}

func TestSearchInvalidJSON(t *testing.T) {
	handler := NewRouter(&assistantFake{}, Options{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	handler := NewRouter(&assistantFake{}, Options{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"  "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchMethodNotAllowed(t *testing.T) {
	handler := NewRouter(&assistantFake{}, Options{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestSearchErrorMapping(t *testing.T) {
	assistant := &assistantFake{searchErr: domain.WrapError(domain.ErrInvalidInput, "process search", errors.New("query is required"))}
	handler := NewRouter(assistant, Options{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"wallet"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid input kind, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := NewRouter(&assistantFake{}, Options{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("unexpected health body %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewRouter(&assistantFake{}, Options{AllowedOrigins: []string{"http://localhost:3000"}}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/v1/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	handler := NewRouter(&assistantFake{searchResult: okResult()}, Options{AllowedOrigins: []string{"http://localhost:3000"}}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"wallet"}`))
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected no allow-origin header for unknown origin")
	}
}

func TestOnRunCallback(t *testing.T) {
	var gotKind string
	var gotCount int
	handler := NewRouter(&assistantFake{searchResult: okResult()}, Options{
		OnRun: func(kind string, result *domain.SearchResult) {
			gotKind = kind
			gotCount = len(result.Products)
		},
	}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"wallet"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotKind != "search" || gotCount != 1 {
		t.Fatalf("expected callback with search/1, got %s/%d", gotKind, gotCount)
	}
}
