// Package ingest fetches paper metadata from the arXiv catalog, embeds
// new papers and writes them to the paper store.
package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks github.com/jaisngh/arxiv-rag/internal/ingest Catalog,Embedder

import (
	"context"

	"github.com/jaisngh/arxiv-rag/internal/arxiv"
	"github.com/jaisngh/arxiv-rag/internal/contextutil"
	"github.com/jaisngh/arxiv-rag/internal/store"
)

// Catalog produces paper records from an external catalog. Ordering and
// pagination are the catalog's concern.
type Catalog interface {
	Search(ctx context.Context, query string, maxResults int, sortBy, sortOrder string) ([]arxiv.Paper, error)
	FetchByCategory(ctx context.Context, category string, maxResults int) ([]arxiv.Paper, error)
}

// Embedder turns a paper into its embedding vector.
type Embedder interface {
	EmbedForPaper(ctx context.Context, title, abstract string) ([]float32, error)
}

// Observer receives a progress notification after each paper in a batch
// is processed. Notification is fire-and-forget: a panicking observer
// never aborts ingestion.
type Observer interface {
	OnPaper(current, total int, title string)
}

// Stats summarizes one ingestion batch.
// Invariant: Fetched = Ingested + Skipped + Failed.
type Stats struct {
	// Fetched is the number of papers returned by the catalog.
	Fetched int `json:"fetched"`
	// Ingested is the number of papers newly embedded and stored.
	Ingested int `json:"ingested"`
	// Skipped is the number of papers that already existed in the store.
	Skipped int `json:"skipped"`
	// Failed is the number of papers that errored mid-embedding or
	// mid-write; the batch continues past them.
	Failed int `json:"failed"`
}

// Ingestor fetches papers and indexes them in the paper store.
type Ingestor struct {
	catalog  Catalog
	embedder Embedder
	papers   store.PaperStore
}

// NewIngestor creates a new Ingestor.
func NewIngestor(catalog Catalog, embedder Embedder, papers store.PaperStore) *Ingestor {
	return &Ingestor{
		catalog:  catalog,
		embedder: embedder,
		papers:   papers,
	}
}

// IngestOne ingests a single paper. It returns true if the paper was newly
// inserted and false if it already existed; the existence check runs
// before any embedding call, so re-ingesting a known paper never touches
// the embedding service.
func (in *Ingestor) IngestOne(ctx context.Context, paper arxiv.Paper) (bool, error) {
	exists, err := in.papers.Exists(ctx, paper.ArxivID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	embedding, err := in.embedder.EmbedForPaper(ctx, paper.Title, paper.Abstract)
	if err != nil {
		return false, err
	}

	record := &store.Paper{
		ArxivID:    paper.ArxivID,
		Title:      paper.Title,
		Abstract:   paper.Abstract,
		Authors:    paper.Authors,
		Categories: paper.Categories,
		Published:  paper.Published,
		Embedding:  embedding,
	}
	if err := in.papers.Upsert(ctx, record); err != nil {
		return false, err
	}

	return true, nil
}

// IngestFromQuery fetches papers matching an arXiv search query and
// ingests them. obs may be nil.
func (in *Ingestor) IngestFromQuery(ctx context.Context, query string, maxResults int, obs Observer) (Stats, error) {
	papers, err := in.catalog.Search(ctx, query, maxResults, arxiv.SortSubmittedDate, arxiv.OrderDescending)
	if err != nil {
		return Stats{}, err
	}
	return in.ingestBatch(ctx, papers, obs), nil
}

// IngestFromCategory fetches papers from an arXiv category and ingests them.
// obs may be nil.
func (in *Ingestor) IngestFromCategory(ctx context.Context, category string, maxResults int, obs Observer) (Stats, error) {
	papers, err := in.catalog.FetchByCategory(ctx, category, maxResults)
	if err != nil {
		return Stats{}, err
	}
	return in.ingestBatch(ctx, papers, obs), nil
}

// ingestBatch processes an already-fetched batch sequentially. The whole
// batch sits in memory before the first embedding call; at the
// dozens-to-low-hundreds sizes this system targets that is a deliberate
// simplicity trade-off.
func (in *Ingestor) ingestBatch(ctx context.Context, papers []arxiv.Paper, obs Observer) Stats {
	logger := contextutil.LoggerFromContext(ctx)

	stats := Stats{}
	total := len(papers)

	for i, paper := range papers {
		stats.Fetched++

		notify(obs, i+1, total, paper.Title)

		inserted, err := in.IngestOne(ctx, paper)
		switch {
		case err != nil:
			// A paper that errors mid-embedding is counted separately and
			// the batch continues.
			stats.Failed++
			logger.WarnContext(ctx, "failed to ingest paper", "arxiv_id", paper.ArxivID, "error", err)
		case inserted:
			stats.Ingested++
		default:
			stats.Skipped++
		}
	}

	logger.InfoContext(ctx, "ingestion batch completed",
		"fetched", stats.Fetched,
		"ingested", stats.Ingested,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats
}

// notify delivers a progress event, swallowing observer panics.
func notify(obs Observer, current, total int, title string) {
	if obs == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	obs.OnPaper(current, total, title)
}
