package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaisngh/arxiv-rag/internal/handlers"
	"github.com/jaisngh/arxiv-rag/internal/ingest"
	"github.com/jaisngh/arxiv-rag/internal/rag"
	"github.com/jaisngh/arxiv-rag/internal/store"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine   rag.Engine
	Ingestor *ingest.Ingestor
	Papers   store.PaperStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine)
	ingestHandler := handlers.NewIngestHandler(deps.Ingestor)
	papersHandler := handlers.NewPapersHandler(deps.Papers)
	healthHandler := handlers.NewHealthHandler(deps.Papers)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/ingest", ingestHandler)
		r.Method(http.MethodGet, "/papers", papersHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
