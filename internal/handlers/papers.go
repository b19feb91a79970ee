package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/store"
)

// PapersHandler handles HTTP requests for listing stored papers.
type PapersHandler struct {
	papers store.PaperStore
}

// NewPapersHandler creates a new PapersHandler.
func NewPapersHandler(papers store.PaperStore) *PapersHandler {
	return &PapersHandler{papers: papers}
}

// PapersResponse represents the HTTP response payload for the paper list.
type PapersResponse struct {
	Count  int           `json:"count"`
	Papers []store.Paper `json:"papers"`
}

// ServeHTTP handles HTTP requests for listing stored papers, newest first.
func (h *PapersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	count, err := h.papers.Count(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count papers", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Paper store unavailable")
		return
	}

	papers, err := h.papers.ListRecent(ctx, limit, offset)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list papers", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Paper store unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(PapersResponse{Count: count, Papers: papers}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}
