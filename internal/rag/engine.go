// Package rag implements the retrieval-augmented generation engine:
// embed the query, retrieve the top-K similar papers, assemble a
// grounded prompt and generate a cited answer.
package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks github.com/jaisngh/arxiv-rag/internal/rag Embedder,Generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/store"
)

// Embedder turns query text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EnsureModel(ctx context.Context) bool
}

// Generator produces answer text from a prompt, batched or streamed.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, callback func(token string, done bool) error) error
	EnsureModel(ctx context.Context) bool
}

// Engine answers natural-language questions grounded in stored papers.
type Engine interface {
	// Retrieve embeds the query and returns the top-k similar papers in
	// non-increasing similarity order. An empty store yields an empty
	// slice, never an error.
	Retrieve(ctx context.Context, query string, k int) ([]store.Match, error)

	// Answer runs the full pipeline and returns the generated answer with
	// its sources in retrieval order.
	Answer(ctx context.Context, query string, k int) (Answer, error)

	// AnswerStream runs the pipeline but delivers the answer as a sequence
	// of token events; the sources list rides only on the final event.
	AnswerStream(ctx context.Context, query string, k int, callback func(StreamEvent) error) error

	// EnsureModelsReady provisions both models if missing. Intended to run
	// once at startup, not per query.
	EnsureModelsReady(ctx context.Context) bool
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder  Embedder
	papers    store.PaperStore
	generator Generator
	topK      int
}

// NewEngine creates a new RAG engine. defaultTopK is used when a caller
// passes k <= 0.
func NewEngine(embedder Embedder, papers store.PaperStore, generator Generator, defaultTopK int) Engine {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &ragEngine{
		embedder:  embedder,
		papers:    papers,
		generator: generator,
		topK:      defaultTopK,
	}
}

// Retrieve embeds the raw query text and searches the store. The query is
// deliberately not wrapped in the paper framing template: queries and
// documents have different register, and the asymmetry is part of the
// retrieval contract.
func (e *ragEngine) Retrieve(ctx context.Context, query string, k int) ([]store.Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	if k <= 0 {
		k = e.topK
	}

	queryVec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
	}

	matches, err := e.papers.SearchSimilar(ctx, queryVec, k)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search papers", "k", k, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	logger.InfoContext(ctx, "retrieval completed", "k", k, "results", len(matches))
	return matches, nil
}

// Answer runs retrieve -> context assembly -> prompt -> generate and maps
// the result to an Answer.
func (e *ragEngine) Answer(ctx context.Context, query string, k int) (Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	matches, err := e.Retrieve(ctx, query, k)
	if err != nil {
		return Answer{}, err
	}

	// Empty retrieval is a designed outcome, not a failure: respond with
	// the fixed fallback and never touch the generation service.
	if len(matches) == 0 {
		logger.InfoContext(ctx, "no relevant papers found", "query_length", len(query))
		return Answer{Text: noResultsAnswer, Sources: []Source{}}, nil
	}

	prompt := buildPrompt(query, buildContext(matches))
	logger.DebugContext(ctx, "prompt assembled", "prompt_length", len(prompt), "papers", len(matches))

	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "generation failed", "error", err)
		return Answer{}, fmt.Errorf("%w: %v", ErrGenerationService, err)
	}

	return Answer{Text: text, Sources: sourcesFromMatches(matches)}, nil
}

// AnswerStream performs retrieval once, eagerly, before the first token is
// emitted, then streams generation. A callback error or context
// cancellation stops consuming the generation stream without re-querying
// the store.
func (e *ragEngine) AnswerStream(ctx context.Context, query string, k int, callback func(StreamEvent) error) error {
	logger := contextutil.LoggerFromContext(ctx)

	matches, err := e.Retrieve(ctx, query, k)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		logger.InfoContext(ctx, "no relevant papers found", "query_length", len(query))
		return callback(StreamEvent{Token: noResultsAnswer, Done: true, Sources: []Source{}})
	}

	prompt := buildPrompt(query, buildContext(matches))
	sources := sourcesFromMatches(matches)

	err = e.generator.GenerateStream(ctx, prompt, func(token string, done bool) error {
		ev := StreamEvent{Token: token, Done: done}
		if done {
			ev.Sources = sources
		}
		return callback(ev)
	})
	if err != nil {
		logger.ErrorContext(ctx, "streaming generation failed", "error", err)
		return fmt.Errorf("%w: %v", ErrGenerationService, err)
	}
	return nil
}

// EnsureModelsReady provisions the embedding and generation models.
func (e *ragEngine) EnsureModelsReady(ctx context.Context) bool {
	embedReady := e.embedder.EnsureModel(ctx)
	genReady := e.generator.EnsureModel(ctx)
	return embedReady && genReady
}

// sourcesFromMatches projects matches to sources, preserving retrieval
// order.
func sourcesFromMatches(matches []store.Match) []Source {
	sources := make([]Source, len(matches))
	for i, m := range matches {
		sources[i] = Source{
			ArxivID:    m.ArxivID,
			Title:      m.Title,
			Similarity: m.Similarity,
		}
	}
	return sources
}
