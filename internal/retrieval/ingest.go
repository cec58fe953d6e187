package retrieval

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	chunkSize    = 300
	chunkOverlap = 100
)

// IndexDir loads .txt and .pdf files from dir, splits them into chunks,
// embeds each chunk, and inserts into the store. Unreadable files are
// skipped with a warning; the rest of the directory still gets indexed.
func IndexDir(ctx context.Context, dir string, store *Store, embedder Embedder) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read docs dir: %w", err)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	indexed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		docs, err := loadFile(ctx, path, splitter)
		if err != nil {
			log.Printf("⚠ skipping %s: %v", entry.Name(), err)
			continue
		}
		if len(docs) == 0 {
			continue
		}

		texts := make([]string, len(docs))
		for i, d := range docs {
			texts[i] = d.PageContent
		}

		embeddings, err := embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed %s: %w", entry.Name(), err)
		}

		for i, d := range docs {
			if err := store.Insert(ctx, d.PageContent, entry.Name(), embeddings[i]); err != nil {
				return err
			}
		}
		indexed += len(docs)
	}

	if indexed > 0 {
		log.Printf("✅ Indexed %d document chunks from %s", indexed, dir)
	}
	return nil
}

func loadFile(ctx context.Context, path string, splitter textsplitter.TextSplitter) ([]schema.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return documentloaders.NewText(f).LoadAndSplit(ctx, splitter)
	case ".pdf":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return documentloaders.NewPDF(f, info.Size()).LoadAndSplit(ctx, splitter)
	default:
		return nil, nil
	}
}
