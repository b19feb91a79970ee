package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/jaisngh/arxiv-rag/internal/arxiv"
	"github.com/jaisngh/arxiv-rag/internal/config"
	"github.com/jaisngh/arxiv-rag/internal/http"
	"github.com/jaisngh/arxiv-rag/internal/ingest"
	"github.com/jaisngh/arxiv-rag/internal/ollama"
	"github.com/jaisngh/arxiv-rag/internal/rag"
	"github.com/jaisngh/arxiv-rag/internal/store"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx := context.Background()

	// Initialize the paper store
	papers, err := store.NewPostgresStore(ctx, cfg.PostgresURL(), cfg.EmbeddingDim)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer papers.Close()

	if err := papers.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	slog.Info("Paper store initialized", "host", cfg.PostgresHost, "db", cfg.PostgresDB, "dim", cfg.EmbeddingDim)

	// Create model service clients
	embedder := ollama.NewEmbeddingsClient(cfg.OllamaHost, cfg.EmbedModelName, cfg.EmbeddingDim)
	generator := ollama.NewClient(cfg.OllamaHost, cfg.LLMModelName)

	// Create ingestor and RAG engine
	catalog := arxiv.NewClient()
	ingestor := ingest.NewIngestor(catalog, embedder, papers)
	engine := rag.NewEngine(embedder, papers, generator, cfg.TopK)

	// Provision models once at startup. A failure here is a setup
	// condition, not a fatal error: the health endpoint and per-request
	// errors surface it, and the operator can fix the Ollama host without
	// restarting the API.
	if engine.EnsureModelsReady(ctx) {
		slog.Info("Models ready", "embed_model", cfg.EmbedModelName, "llm_model", cfg.LLMModelName)
	} else {
		slog.Error("Models not ready; queries will fail until Ollama is reachable and the models are installed",
			"host", cfg.OllamaHost, "embed_model", cfg.EmbedModelName, "llm_model", cfg.LLMModelName)
	}

	// Create router with dependencies
	deps := &http.Deps{
		Engine:   engine,
		Ingestor: ingestor,
		Papers:   papers,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
