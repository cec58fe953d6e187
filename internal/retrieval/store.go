package retrieval

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Store provides pgvector-backed storage and search for document chunks.
type Store struct {
	pool *pgxpool.Pool
}

// Passage is one ranked chunk returned by a similarity search.
type Passage struct {
	Content  string
	Source   string
	Distance float64 // cosine distance (lower = more similar)
}

// NewStore creates a pgvector store and verifies the connection.
func NewStore(ctx context.Context, pgURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(pgURL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres URL: %w", err)
	}

	// Register pgvector types on each new connection
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Init creates the pgvector extension, table, and index if they don't exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS company_docs (
			id        BIGSERIAL PRIMARY KEY,
			content   TEXT NOT NULL,
			source    TEXT NOT NULL,
			embedding vector(384) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create company_docs table: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_company_docs_hnsw
		ON company_docs
		USING hnsw (embedding vector_cosine_ops)
		WITH (m = 16, ef_construction = 64)
	`)
	if err != nil {
		return fmt.Errorf("create HNSW index: %w", err)
	}

	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Insert stores one document chunk with its embedding.
func (s *Store) Insert(ctx context.Context, content, source string, embedding []float32) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO company_docs (content, source, embedding)
		VALUES ($1, $2, $3)
	`, content, source, pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("insert document chunk: %w", err)
	}
	return nil
}

// Count returns the number of stored chunks. Ingestion only runs on an
// empty collection.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, "SELECT count(*) FROM company_docs").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Search returns the k chunks nearest to the query embedding by cosine
// distance.
func (s *Store) Search(ctx context.Context, embedding []float32, k int) ([]Passage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT content, source, embedding <=> $1 AS distance
		FROM company_docs
		ORDER BY distance
		LIMIT $2
	`, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var passages []Passage
	for rows.Next() {
		var p Passage
		if err := rows.Scan(&p.Content, &p.Source, &p.Distance); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		passages = append(passages, p)
	}
	return passages, rows.Err()
}
