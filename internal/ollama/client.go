// Package ollama provides hand-rolled HTTP clients for the Ollama
// generation and embedding APIs.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a client for the Ollama text generation API.
type Client struct {
	Host   string
	Model  string
	client *http.Client
}

// NewClient creates a new generation client for the given model.
// host should be in the format "http://host:port" (e.g., "http://localhost:11434").
func NewClient(host, model string) *Client {
	return &Client{
		Host:   host,
		Model:  model,
		client: http.DefaultClient,
	}
}

// GenerateRequest represents the request payload for the generate API.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// GenerateResponse represents one response object from the generate API.
// In streaming mode Ollama emits one JSON object per line.
type GenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends a generation request and returns the complete response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/api/generate", c.Host)

	payload := GenerateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Stream: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return genResp.Response, nil
}

// GenerateStream sends a streaming generation request and calls the
// callback for each token. The final call has done=true and an empty
// token unless the model attached trailing text. A callback error stops
// the stream and is returned to the caller.
func (c *Client) GenerateStream(ctx context.Context, prompt string, callback func(token string, done bool) error) error {
	url := fmt.Sprintf("%s/api/generate", c.Host)

	payload := GenerateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Stream: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
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

	// Ollama streams newline-delimited JSON objects.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk GenerateResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			// Skip malformed chunks
			continue
		}

		if err := callback(chunk.Response, chunk.Done); err != nil {
			return fmt.Errorf("callback error: %w", err)
		}

		if chunk.Done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}

	return nil
}

// EnsureModel checks that the generation model is available locally and
// pulls it if missing. It returns false rather than an error so callers
// can surface a setup diagnostic instead of crashing.
func (c *Client) EnsureModel(ctx context.Context) bool {
	return ensureModel(ctx, c.client, c.Host, c.Model)
}
