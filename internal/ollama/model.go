package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
)

// modelRequest is the shared payload for the show and pull endpoints.
type modelRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream,omitempty"`
}

// pullResponse represents the final response from the pull endpoint.
type pullResponse struct {
	Status string `json:"status"`
}

// ensureModel checks whether the model is installed (show) and attempts a
// one-shot pull if it is not. Provisioning is attempted once by callers at
// startup, never per request. Failure is reported as false, not an error:
// a missing model is a setup condition the caller surfaces to the user.
func ensureModel(ctx context.Context, client *http.Client, host, model string) bool {
	logger := contextutil.LoggerFromContext(ctx)

	installed, err := modelInstalled(ctx, client, host, model)
	if err != nil {
		logger.WarnContext(ctx, "failed to check model availability", "model", model, "error", err)
		return false
	}
	if installed {
		return true
	}

	logger.InfoContext(ctx, "model not installed, pulling", "model", model)
	if err := pullModel(ctx, client, host, model); err != nil {
		logger.ErrorContext(ctx, "failed to pull model", "model", model, "error", err)
		return false
	}

	logger.InfoContext(ctx, "model pulled", "model", model)
	return true
}

// modelInstalled asks the show endpoint whether the model is present.
// A 404 means "not installed"; any other non-200 status is an error.
func modelInstalled(ctx context.Context, client *http.Client, host, model string) (bool, error) {
	body, err := json.Marshal(modelRequest{Model: model})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/show", host)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}
}

// pullModel downloads the model. The non-streaming pull blocks until the
// download completes or fails.
func pullModel(ctx context.Context, client *http.Client, host, model string) error {
	body, err := json.Marshal(modelRequest{Model: model})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/pull", host)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	// The pull endpoint streams progress objects; the last line carries the
	// final status. Scan to the end and check it.
	var last pullResponse
	dec := json.NewDecoder(resp.Body)
	for dec.More() {
		if err := dec.Decode(&last); err != nil {
			return fmt.Errorf("failed to decode pull response: %w", err)
		}
	}
	if last.Status != "success" {
		return fmt.Errorf("pull did not succeed: status %q", last.Status)
	}
	return nil
}
