package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/core/ports"
)

type Router struct {
	assistant      ports.ShoppingAssistant
	metricsHandler http.Handler
	allowedOrigins []string
	onRun          func(kind string, result *domain.SearchResult)
}

type Options struct {
	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler
	// AllowedOrigins configures CORS; empty disables the headers entirely.
	AllowedOrigins []string
	// OnRun fires after every completed search or refine run.
	OnRun func(kind string, result *domain.SearchResult)
}

func NewRouter(assistant ports.ShoppingAssistant, options Options) *Router {
	return &Router{
		assistant:      assistant,
		metricsHandler: options.MetricsHandler,
		allowedOrigins: options.AllowedOrigins,
		onRun:          options.OnRun,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/search", rt.search)
	mux.HandleFunc("/v1/search/refine", rt.refine)
	if rt.metricsHandler != nil {
		mux.Handle("/metrics", rt.metricsHandler)
	}

	var handler http.Handler = mux
	handler = corsMiddleware(rt.allowedOrigins, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	rt.run(w, r, "search", rt.assistant.ProcessSearch)
}

func (rt *Router) refine(w http.ResponseWriter, r *http.Request) {
	rt.run(w, r, "refine", rt.assistant.RefineSearch)
}

func (rt *Router) run(w http.ResponseWriter, r *http.Request, kind string, invoke func(context.Context, domain.SearchRequest) (*domain.SearchResult, error)) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	result, err := invoke(r.Context(), req)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.onRun != nil {
		rt.onRun(kind, result)
	}

	// A populated result.Error is a soft pipeline failure and still a 200:
	// the session was persisted and the caller can refine or retry.
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
