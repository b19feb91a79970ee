package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// paperTemplate frames a paper for embedding. Stored vectors were all
// produced with this exact framing; changing it (or mixing framings)
// silently degrades retrieval quality because old and new vectors stop
// being comparable. Treat it as an invariant, not a formatting choice.
const paperTemplate = "Title: %s\n\nAbstract: %s"

// EmbeddingsClient is a client for the Ollama embeddings API.
type EmbeddingsClient struct {
	Host         string
	Model        string
	ExpectedSize int // Expected vector size for validation
	client       *http.Client
}

// NewEmbeddingsClient creates a new embeddings client. expectedSize is the
// output dimension of the model (from EMBEDDING_DIM config); every returned
// vector is validated against it.
func NewEmbeddingsClient(host, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		Host:         host,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

// EmbedRequest represents the request payload for the embeddings API.
type EmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbedResponse represents the response from the embeddings API.
type EmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed generates an embedding for a single text.
func (c *EmbeddingsClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for the given texts, one vector per
// input, each validated against the expected size.
func (c *EmbeddingsClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	url := fmt.Sprintf("%s/api/embed", c.Host)

	payload := EmbedRequest{
		Model: c.Model,
		Input: texts,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embedResp EmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embedResp.Embeddings))
	}

	for i, vec := range embedResp.Embeddings {
		if len(vec) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(vec), c.ExpectedSize)
		}
	}

	return embedResp.Embeddings, nil
}

// EmbedForPaper embeds a paper as a single title+abstract unit using the
// fixed framing template. Query text is deliberately NOT framed this way:
// queries and documents have different linguistic register, and the
// asymmetry is part of the retrieval contract.
func (c *EmbeddingsClient) EmbedForPaper(ctx context.Context, title, abstract string) ([]float32, error) {
	return c.Embed(ctx, fmt.Sprintf(paperTemplate, title, abstract))
}

// EnsureModel checks that the embedding model is available locally and
// pulls it if missing. It returns false rather than an error so callers
// can surface a setup diagnostic instead of crashing.
func (c *EmbeddingsClient) EnsureModel(ctx context.Context) bool {
	return ensureModel(ctx, c.client, c.Host, c.Model)
}
