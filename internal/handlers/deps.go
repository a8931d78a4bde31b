package handlers

import (
	"context"

	"emailogan/internal/models"
)

// VectorStore is the store surface the vector handlers depend on.
type VectorStore interface {
	Upsert(ctx context.Context, entries []models.VectorEntry) (int, error)
	Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]models.RetrievalMatch, error)
	ListAll(ctx context.Context, ceiling int) ([]models.RetrievalMatch, bool, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (uint64, error)
	HealthCheck(ctx context.Context) error
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}
