package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/jaisngh/arxiv-rag/internal/contextutil"
)

// DBPool is the subset of pgxpool.Pool used by the store. Tests
// substitute a pgxmock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements PaperStore on PostgreSQL with the pgvector
// extension. Cosine distance is the similarity metric: the embedding
// models this store serves encode meaning in vector direction, not
// magnitude, so Euclidean distance would bias toward length artifacts.
type PostgresStore struct {
	pool DBPool
	dim  int
}

// NewPostgresStore connects a pool to the given database and returns a
// store for vectors of the given dimension. pgvector types are registered
// on every pooled connection.
func NewPostgresStore(ctx context.Context, connString string, dim int) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("invalid Postgres connection string: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return &PostgresStore{pool: pool, dim: dim}, nil
}

// NewPostgresStoreWithPool creates a store on an existing pool.
// Useful for testing with mocks.
func NewPostgresStoreWithPool(pool DBPool, dim int) *PostgresStore {
	return &PostgresStore{pool: pool, dim: dim}
}

// InitSchema creates the vector extension, the papers table and the HNSW
// cosine index. It runs once at startup; the index is not a per-query
// concern.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS papers (
			id BIGSERIAL PRIMARY KEY,
			arxiv_id TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			authors TEXT[],
			categories TEXT[],
			published_date TIMESTAMPTZ,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.dim)
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create papers table: %w", err)
	}

	index := "CREATE INDEX IF NOT EXISTS papers_embedding_idx ON papers USING hnsw (embedding vector_cosine_ops)"
	if _, err := s.pool.Exec(ctx, index); err != nil {
		return fmt.Errorf("failed to create embedding index: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Upsert inserts or overwrites the paper keyed by arxiv_id.
func (s *PostgresStore) Upsert(ctx context.Context, paper *Paper) error {
	logger := contextutil.LoggerFromContext(ctx)

	query := `
		INSERT INTO papers (arxiv_id, title, abstract, authors, categories, published_date, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (arxiv_id) DO UPDATE SET
			title = EXCLUDED.title,
			abstract = EXCLUDED.abstract,
			authors = EXCLUDED.authors,
			categories = EXCLUDED.categories,
			published_date = EXCLUDED.published_date,
			embedding = EXCLUDED.embedding`

	_, err := s.pool.Exec(ctx, query,
		paper.ArxivID,
		paper.Title,
		paper.Abstract,
		paper.Authors,
		paper.Categories,
		nullableTime(paper.Published),
		nullableVector(paper.Embedding),
	)
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert paper", "arxiv_id", paper.ArxivID, "error", err)
		return fmt.Errorf("failed to upsert paper: %w", err)
	}

	logger.DebugContext(ctx, "upserted paper", "arxiv_id", paper.ArxivID)
	return nil
}

// Exists reports whether a paper with the given arxiv_id is stored.
func (s *PostgresStore) Exists(ctx context.Context, arxivID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM papers WHERE arxiv_id = $1)", arxivID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check paper existence: %w", err)
	}
	return exists, nil
}

// SearchSimilar returns the k nearest embedded papers by cosine distance.
func (s *PostgresStore) SearchSimilar(ctx context.Context, queryVec []float32, k int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	query := `
		SELECT arxiv_id, title, abstract, authors, categories, published_date,
		       1 - (embedding <=> $1) AS similarity
		FROM papers
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(queryVec), k)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search papers", "k", k, "error", err)
		return nil, fmt.Errorf("failed to search papers: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var (
			m         Match
			published *time.Time
		)
		if err := rows.Scan(&m.ArxivID, &m.Title, &m.Abstract, &m.Authors, &m.Categories, &published, &m.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if published != nil {
			m.Published = *published
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	logger.DebugContext(ctx, "similarity search completed", "k", k, "results", len(matches))
	return matches, nil
}

// Count returns the total number of stored papers.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM papers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count papers: %w", err)
	}
	return count, nil
}

// ListRecent returns papers ordered by published date descending; papers
// without a date sort last.
func (s *PostgresStore) ListRecent(ctx context.Context, limit, offset int) ([]Paper, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT arxiv_id, title, abstract, authors, categories, published_date
		FROM papers
		ORDER BY published_date DESC NULLS LAST
		LIMIT $1 OFFSET $2`

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}
	defer rows.Close()

	papers := []Paper{}
	for rows.Next() {
		var (
			p         Paper
			published *time.Time
		)
		if err := rows.Scan(&p.ArxivID, &p.Title, &p.Abstract, &p.Authors, &p.Categories, &published); err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		if published != nil {
			p.Published = *published
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return papers, nil
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// nullableVector maps a nil embedding to SQL NULL.
func nullableVector(vec []float32) any {
	if vec == nil {
		return nil
	}
	return pgvector.NewVector(vec)
}
