// Package api provides HTTP handlers for the states explorer.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/metrics"
	"github.com/robwiederstein/statesexplorer/internal/shell/snapshot"
	"github.com/robwiederstein/statesexplorer/internal/shell/source"
	"github.com/robwiederstein/statesexplorer/internal/shell/store"
	"github.com/robwiederstein/statesexplorer/internal/shell/upstream"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API and the web UI.
type Handler struct {
	src     *source.Cached
	metrics *metrics.Metrics
	limiter *ipLimiter
	logger  *slog.Logger
}

// Config holds handler configuration.
type Config struct {
	Source  *source.Cached
	Metrics *metrics.Metrics // nil disables /metrics and counters
	Logger  *slog.Logger

	// Rate limiting for API routes. Zero values disable limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{
		src:     cfg.Source,
		metrics: cfg.Metrics,
		limiter: newIPLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		logger:  cfg.Logger,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestIDHeader)
	r.Use(h.countRequests)

	// Web UI
	r.Get("/", h.handleIndex)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.jsonContentType)
		r.Use(h.rateLimit)

		r.Get("/states", h.handleListStates)
		r.Get("/states/{slug}", h.handleGetState)
		r.Get("/columns", h.handleColumns)
		r.Get("/snapshot", h.handleSnapshot)
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// countRequests records per-route request counts by status class.
func (h *Handler) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.RequestsTotal.WithLabelValues(route, statusClass(ww.Status())).Inc()
	})
}

// rateLimit rejects requests over the per-IP budget with 429.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(r.RemoteAddr) {
			h.writeError(w, http.StatusTooManyRequests, "too many requests", "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	checks := make(map[string]string)

	if err := h.src.Healthy(r.Context()); err != nil {
		checks[h.src.SourceName()] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks[h.src.SourceName()] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// State Handlers
// =============================================================================

func (h *Handler) handleListStates(w http.ResponseWriter, r *http.Request) {
	key, err := states.ParseSortKey(r.URL.Query().Get("sort_by"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "invalid_sort_key")
		return
	}

	listing, err := h.src.List(r.Context(), key)
	if err != nil {
		h.logger.Error("failed to list states", "sort_by", key, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "state data is currently unavailable", "source_unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, ListStatesResponse{
		SortBy:    string(key),
		Count:     len(listing.States),
		Stale:     listing.Stale,
		FetchedAt: listing.FetchedAt,
		States:    statesToResponse(listing.States),
	})
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	st, err := h.src.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "state not found", "state_not_found")
			return
		}
		if errors.Is(err, upstream.ErrUnreachable) || errors.Is(err, upstream.ErrBadStatus) {
			h.writeError(w, http.StatusServiceUnavailable, "state data is currently unavailable", "source_unavailable")
			return
		}
		h.logger.Error("failed to get state", "slug", slug, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get state", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, stateToResponse(*st))
}

func (h *Handler) handleColumns(w http.ResponseWriter, r *http.Request) {
	cols := states.Columns()
	resp := ColumnsResponse{
		Default: string(states.DefaultSortKey),
		Columns: make([]ColumnResponse, len(cols)),
	}
	for i, c := range cols {
		resp.Columns[i] = ColumnResponse{
			Key:   string(c.Key),
			Label: c.Label,
			Help:  c.Help,
		}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Snapshot Handler
// =============================================================================

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	listing, err := h.src.List(r.Context(), states.DefaultSortKey)
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "state data is currently unavailable", "source_unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="states.yaml"`)
	w.WriteHeader(http.StatusOK)
	if err := snapshot.Write(w, listing.States); err != nil {
		h.logger.Error("failed to write snapshot", "error", err)
	}
}

// =============================================================================
// Response Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
