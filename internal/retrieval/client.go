// Package retrieval provides document context for chat replies.
//
// It connects to HuggingFace Text Embeddings Inference (TEI) for generating
// embeddings (all-MiniLM-L6-v2, 384 dims) and pgvector (PostgreSQL) for
// storing and searching company document chunks.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Embedder turns texts into vectors. Satisfied by TEIClient; tests swap in
// a counting fake.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// TEIClient is an HTTP client for HuggingFace Text Embeddings Inference.
type TEIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTEIClient(baseURL string) *TEIClient {
	return &TEIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// embedRequest is the TEI /embed request body.
type embedRequest struct {
	Inputs interface{} `json:"inputs"` // string or []string
}

// Embed generates embeddings for one or more texts.
func (c *TEIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var body embedRequest
	if len(texts) == 1 {
		body = embedRequest{Inputs: texts[0]}
	} else {
		body = embedRequest{Inputs: texts}
	}

	reqBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed", bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("embed request returned %d: %s", resp.StatusCode, msg)
	}

	var embeddings [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&embeddings); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embed count mismatch: sent %d, got %d", len(texts), len(embeddings))
	}

	return embeddings, nil
}
