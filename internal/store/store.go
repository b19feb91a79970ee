package store

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_paper_store.go -package=mocks github.com/jaisngh/arxiv-rag/internal/store PaperStore

import "context"

// PaperStore defines the interface for paper storage and similarity search.
type PaperStore interface {
	// Upsert inserts the paper or overwrites the existing row with the
	// same arxiv_id. The operation is atomic per row.
	Upsert(ctx context.Context, paper *Paper) error

	// Exists reports whether a paper with the given arxiv_id is stored.
	Exists(ctx context.Context, arxivID string) (bool, error)

	// SearchSimilar returns up to k papers nearest to the query vector by
	// cosine distance, in non-increasing similarity order. Rows without an
	// embedding are never returned. An empty store yields an empty slice,
	// not an error.
	SearchSimilar(ctx context.Context, query []float32, k int) ([]Match, error)

	// Count returns the total number of stored papers.
	Count(ctx context.Context) (int, error)

	// ListRecent returns papers ordered by published date descending,
	// papers without a date last.
	ListRecent(ctx context.Context, limit, offset int) ([]Paper, error)
}
