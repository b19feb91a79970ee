package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/rag"
)

// AskHandler handles HTTP requests for RAG queries.
type AskHandler struct {
	engine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine rag.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// AskRequest represents the HTTP request payload for RAG queries.
type AskRequest struct {
	Question string `json:"question"`
	// K optionally overrides the configured number of papers to retrieve.
	K int `json:"k,omitempty"`
}

// AskResponse represents the HTTP response payload for RAG queries.
type AskResponse struct {
	Answer  string       `json:"answer"`
	Sources []rag.Source `json:"sources"`
	// HTML is the markdown answer rendered to HTML, present only when
	// format=html was requested.
	HTML string `json:"html,omitempty"`
}

// ServeHTTP handles HTTP requests for RAG queries. With ?stream=true the
// answer is delivered as Server-Sent Events; the final event carries the
// sources list. With ?format=html the markdown answer is additionally
// rendered to HTML.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.K < 0 {
		req.K = 0
	}

	if r.URL.Query().Get("stream") == "true" {
		h.handleStreaming(w, ctx, req)
		return
	}

	answer, err := h.engine.Answer(ctx, req.Question, req.K)
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to answer question")
		return
	}

	resp := AskResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	}

	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(answer.Text), &buf); err != nil {
			logger.WarnContext(ctx, "failed to render answer as HTML", "error", err)
		} else {
			resp.HTML = buf.String()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleStreaming streams the answer using Server-Sent Events, one JSON
// stream event per message.
func (h *AskHandler) handleStreaming(w http.ResponseWriter, ctx context.Context, req AskRequest) {
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	err := h.engine.AnswerStream(ctx, req.Question, req.K, func(ev rag.StreamEvent) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "error streaming answer", "error", err)
		_, _ = fmt.Fprintf(w, "data: {\"error\":%q}\n\n", err.Error())
		flusher.Flush()
		return
	}

	_, _ = fmt.Fprintf(w, "data: [DONE]\n\n")
	flusher.Flush()
}
