package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/store"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	papers             store.PaperStore
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(papers store.PaperStore) *HealthHandler {
	return &HealthHandler{
		papers:             papers,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// PaperCount is the number of stored papers when the store is reachable.
	PaperCount int `json:"paper_count,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks. Returns 200 when the
// paper store is reachable, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	count, err := h.papers.Count(checkCtx)
	if err != nil {
		logger.WarnContext(ctx, "paper store health check failed", "error", err)
		checks["paper_store"] = "error"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["paper_store"] = "ok"
	}

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Checks:     checks,
		PaperCount: count,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
