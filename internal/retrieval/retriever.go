package retrieval

import (
	"context"
	"log"
	"strings"
)

// Searcher is the vector-search side of the Store, split out so the
// retriever can be exercised without a live database.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, k int) ([]Passage, error)
}

// Retriever answers "what do the company documents say about this?".
type Retriever struct {
	store    Searcher
	embedder Embedder
}

func NewRetriever(store Searcher, embedder Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Context returns the joined top-k passages for a query, or "" when nothing
// useful is available. Queries of two tokens or fewer never reach the
// embedding service. Failures are logged and downgraded to an empty context.
func (r *Retriever) Context(ctx context.Context, query string, k int) string {
	if len(strings.Fields(query)) <= 2 {
		return ""
	}
	if k <= 0 {
		k = 3
	}

	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		log.Printf("⚠ retrieval embed error: %v", err)
		return ""
	}

	passages, err := r.store.Search(ctx, embeddings[0], k)
	if err != nil {
		log.Printf("⚠ retrieval search error: %v", err)
		return ""
	}

	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n")
}
