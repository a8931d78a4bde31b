// Package vectorstore adapts the Qdrant vector database to the email
// knowledge base: upsert, top-K similarity query, enumeration, and full
// reset. Implementations of the remote calls are safe for concurrent
// use; consistency across concurrent writers is delegated to Qdrant's
// last-write-wins upsert semantics.
package vectorstore

import (
	"context"
	"fmt"
	"time"

	"emailogan/internal/config"
	"emailogan/internal/models"

	"github.com/qdrant/go-client/qdrant"
	"github.com/rs/zerolog"
)

const (
	// upsertBatchSize bounds the size of a single upsert request.
	upsertBatchSize = 100

	// operationTimeout applies to each remote call.
	operationTimeout = 30 * time.Second
)

// Searcher is the query-side surface the retrieval pipeline depends on.
type Searcher interface {
	Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]models.RetrievalMatch, error)
}

// Store wraps a Qdrant collection holding embedded emails.
type Store struct {
	client     *qdrant.Client
	collection string
	dimension  uint64
	logger     zerolog.Logger
}

// NewStore connects to Qdrant and ensures the email collection exists.
func NewStore(cfg *config.Config, dimension uint64, logger zerolog.Logger) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.QdrantHost,
		Port:   cfg.QdrantPort,
		APIKey: cfg.QdrantAPIKey,
		UseTLS: cfg.QdrantUseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	store := &Store{
		client:     client,
		collection: cfg.QdrantCollection,
		dimension:  dimension,
		logger:     logger,
	}

	if err := store.ensureCollection(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}

// ensureCollection creates the collection when it does not exist yet.
func (s *Store) ensureCollection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %q: %w", s.collection, err)
	}

	if exists {
		s.logger.Info().Str("collection", s.collection).Msg("Connected to existing vector collection")
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %q: %w", s.collection, err)
	}

	s.logger.Info().Str("collection", s.collection).Uint64("dimension", s.dimension).Msg("Created vector collection")
	return nil
}

// Upsert writes entries in fixed-size batches. Batches are issued
// sequentially and a batch failure aborts the remaining batches; the
// returned count covers the entries stored before the failure.
func (s *Store) Upsert(ctx context.Context, entries []models.VectorEntry) (int, error) {
	stored := 0

	for i := 0; i < len(entries); i += upsertBatchSize {
		end := i + upsertBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		batch := entries[i:end]
		points := make([]*qdrant.PointStruct, len(batch))
		for j, entry := range batch {
			points[j] = &qdrant.PointStruct{
				Id:      qdrant.NewID(PointID(entry.ID)),
				Vectors: qdrant.NewVectors(entry.Values...),
				Payload: qdrant.NewValueMap(payloadFromEntry(entry)),
			}
		}

		batchCtx, cancel := context.WithTimeout(ctx, operationTimeout)
		_, err := s.client.Upsert(batchCtx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         points,
		})
		cancel()
		if err != nil {
			return stored, fmt.Errorf("failed to upsert batch %d-%d: %w", i, end, err)
		}

		stored += len(batch)
		s.logger.Debug().Int("batch_start", i).Int("batch_end", end).Msg("Upserted vector batch")
	}

	return stored, nil
}

// Query returns up to topK entries nearest to the given vector, ordered
// by descending cosine similarity, each carrying its metadata and score.
func (s *Store) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]models.RetrievalMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		Filter:         filterFromMap(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	matches := make([]models.RetrievalMatch, 0, len(points))
	for _, point := range points {
		matches = append(matches, models.RetrievalMatch{
			ID:       payloadString(point.GetPayload(), payloadKeyEmailID),
			Score:    point.GetScore(),
			Metadata: metadataFromPayload(point.GetPayload()),
		})
	}

	return matches, nil
}

// ListAll enumerates stored entries with Qdrant's scroll primitive, up
// to ceiling entries. The second return value reports whether the
// ceiling was hit, in which case the listing is truncated.
func (s *Store) ListAll(ctx context.Context, ceiling int) ([]models.RetrievalMatch, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Limit:          qdrant.PtrOf(uint32(ceiling)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to scroll collection: %w", err)
	}

	entries := make([]models.RetrievalMatch, 0, len(points))
	for _, point := range points {
		entries = append(entries, models.RetrievalMatch{
			ID:       payloadString(point.GetPayload(), payloadKeyEmailID),
			Metadata: metadataFromPayload(point.GetPayload()),
		})
	}

	return entries, len(entries) >= ceiling, nil
}

// DeleteAll irreversibly removes every stored entry.
func (s *Store) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points:         qdrant.NewPointsSelectorFilter(&qdrant.Filter{}),
	})
	if err != nil {
		return fmt.Errorf("failed to delete all vectors: %w", err)
	}

	s.logger.Info().Str("collection", s.collection).Msg("Cleared all vectors")
	return nil
}

// Count returns the exact number of stored entries.
func (s *Store) Count(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count vectors: %w", err)
	}

	return count, nil
}

// HealthCheck verifies the Qdrant connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// filterFromMap maps a flat string filter onto a Qdrant keyword filter.
func filterFromMap(filter map[string]string) *qdrant.Filter {
	if len(filter) == 0 {
		return nil
	}

	conditions := make([]*qdrant.Condition, 0, len(filter))
	for field, value := range filter {
		conditions = append(conditions, qdrant.NewMatch(field, value))
	}

	return &qdrant.Filter{Must: conditions}
}
