package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/rag"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleEngineError maps RAG engine errors to HTTP status codes. An
// unavailable dependency is surfaced as its own failure class, never
// masked as "no results".
func handleEngineError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "engine error", "error", err)

	switch {
	case errors.Is(err, rag.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, rag.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Paper store unavailable")
	case errors.Is(err, rag.ErrEmbeddingService), errors.Is(err, rag.ErrGenerationService):
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
