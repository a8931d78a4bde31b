// Package rag implements the retrieval-augmented generation pipeline:
// embedding a query, fetching style-exemplar emails from the vector
// store, and composing the prompt for the completion model.
package rag

import (
	"context"
	"fmt"
	"strings"

	"emailogan/internal/models"
	"emailogan/internal/vectorstore"

	"github.com/rs/zerolog"
)

// DefaultTopK is the number of style exemplars retrieved per query.
const DefaultTopK = 5

// contextSeparator joins rendered example-email blocks.
const contextSeparator = "\n\n---\n\n"

// Embedder turns texts into fixed-dimension vectors.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// ContextBuilder assembles a style-exemplar context block for a query.
type ContextBuilder struct {
	embedder Embedder
	searcher vectorstore.Searcher
	logger   zerolog.Logger
}

// NewContextBuilder creates a context builder over the given embedder
// and vector searcher.
func NewContextBuilder(embedder Embedder, searcher vectorstore.Searcher, logger zerolog.Logger) *ContextBuilder {
	return &ContextBuilder{
		embedder: embedder,
		searcher: searcher,
		logger:   logger,
	}
}

// Build embeds the query text, fetches the topK most similar stored
// emails, and renders them as a labeled context block. Zero matches is
// a valid state (cold-start knowledge base): the context is empty and
// no error is returned.
func (b *ContextBuilder) Build(ctx context.Context, queryText string, topK int) (string, []models.RetrievalMatch, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embeddings, err := b.embedder.CreateEmbeddings(ctx, []string{queryText})
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	if len(embeddings) == 0 {
		return "", nil, fmt.Errorf("embedding service returned no vectors")
	}

	matches, err := b.searcher.Query(ctx, embeddings[0], topK, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to search vectors: %w", err)
	}

	b.logger.Debug().Int("matches", len(matches)).Int("top_k", topK).Msg("Retrieved style exemplars")

	if len(matches) == 0 {
		return "", nil, nil
	}

	blocks := make([]string, len(matches))
	for i, match := range matches {
		blocks[i] = renderExample(match.Metadata)
	}

	return strings.Join(blocks, contextSeparator), matches, nil
}

// renderExample renders one retrieved email as a labeled exemplar.
func renderExample(meta models.EmailMetadata) string {
	return fmt.Sprintf("Example Email:\nFrom: %s\nTo: %s\nSubject: %s\nContent: %s",
		meta.From, meta.To, meta.Subject, meta.Body)
}
