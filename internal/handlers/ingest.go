package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/ingest"
)

// IngestHandler handles HTTP requests for paper ingestion.
type IngestHandler struct {
	ingestor *ingest.Ingestor
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestor *ingest.Ingestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

// IngestRequest represents the HTTP request payload for ingestion.
// Exactly one of Query or Category must be set.
type IngestRequest struct {
	Query      string `json:"query,omitempty"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// IngestResponse represents the HTTP response payload for ingestion.
type IngestResponse struct {
	ingest.Stats
}

// logObserver reports batch progress to the request logger.
type logObserver struct {
	ctx    context.Context
	logger *slog.Logger
}

// OnPaper logs one processed paper.
func (o *logObserver) OnPaper(current, total int, title string) {
	o.logger.InfoContext(o.ctx, "ingesting paper", "current", current, "total", total, "title", title)
}

// ServeHTTP handles HTTP requests for paper ingestion.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if (req.Query == "") == (req.Category == "") {
		writeError(w, http.StatusBadRequest, "Exactly one of query or category is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 50
	}

	obs := &logObserver{ctx: ctx, logger: logger}

	var (
		stats ingest.Stats
		err   error
	)
	if req.Query != "" {
		stats, err = h.ingestor.IngestFromQuery(ctx, req.Query, req.MaxResults, obs)
	} else {
		stats, err = h.ingestor.IngestFromCategory(ctx, req.Category, req.MaxResults, obs)
	}
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch papers from catalog")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(IngestResponse{Stats: stats}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
