package retrieval

import (
	"context"
	"strings"
	"testing"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

type fakeSearcher struct {
	calls    int
	passages []Passage
}

func (f *fakeSearcher) Search(ctx context.Context, embedding []float32, k int) ([]Passage, error) {
	f.calls++
	return f.passages, nil
}

// Queries of two tokens or fewer never reach the embedding service.
func TestContextShortQueryGuard(t *testing.T) {
	embedder := &fakeEmbedder{}
	searcher := &fakeSearcher{}
	r := NewRetriever(searcher, embedder)

	for _, q := range []string{"", "hi", "hello there", "  status   report  "} {
		if got := r.Context(context.Background(), q, 3); got != "" {
			t.Errorf("Context(%q) = %q, want empty", q, got)
		}
	}
	if embedder.calls != 0 || searcher.calls != 0 {
		t.Fatalf("short queries triggered network: embed=%d search=%d", embedder.calls, searcher.calls)
	}
}

func TestContextJoinsPassages(t *testing.T) {
	searcher := &fakeSearcher{passages: []Passage{
		{Content: "We3Vision builds AR experiences.", Source: "about.txt"},
		{Content: "The office is in Surat.", Source: "about.txt"},
	}}
	r := NewRetriever(searcher, &fakeEmbedder{})

	got := r.Context(context.Background(), "tell me about the company", 2)
	if !strings.Contains(got, "AR experiences") || !strings.Contains(got, "Surat") {
		t.Fatalf("Context = %q", got)
	}
	if searcher.calls != 1 {
		t.Fatalf("search calls = %d, want 1", searcher.calls)
	}
}
