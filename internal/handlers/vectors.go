package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"emailogan/internal/cache"
	"emailogan/internal/models"
	"emailogan/internal/rag"
	"emailogan/internal/vectorstore"

	"github.com/labstack/echo/v4"
)

const (
	// listCeiling bounds how many points a single listing walks.
	listCeiling = 10000

	listCacheKey = "vector-listing"

	vectorOpTimeout = 60 * time.Second
)

// StoreVectorsHandler handles storing processed emails in the vector database
// @Summary Store email vectors
// @Description Upserts processed emails into the vector database. Every email must carry an embedding.
// @Tags vectors
// @Accept json
// @Produce json
// @Param request body models.StoreRequest true "Store request"
// @Success 200 {object} models.StoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/vectors/store [post]
// @Security BearerAuth
func StoreVectorsHandler(store VectorStore, listings *cache.ListingCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.StoreRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Details: err.Error(),
			})
		}

		if len(req.Emails) == 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Emails array is required and must not be empty",
			})
		}

		entries := make([]models.VectorEntry, 0, len(req.Emails))
		for i := range req.Emails {
			email := &req.Emails[i]
			if email.ID == "" {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: fmt.Sprintf("Email at index %d is missing an id", i),
				})
			}
			if len(email.Embedding) == 0 {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: fmt.Sprintf("Email at index %d has no embedding, process it first", i),
				})
			}
			entries = append(entries, vectorstore.NewEntry(email))
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), vectorOpTimeout)
		defer cancel()

		stored, err := store.Upsert(ctx, entries)
		if err != nil {
			fmt.Printf("[VECTORS] Upsert failed after %d entries: %v\n", stored, err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to store vectors",
				Details: fmt.Sprintf("stored %d of %d before failure: %v", stored, len(entries), err),
			})
		}

		listings.Invalidate()
		fmt.Printf("[VECTORS] Stored %d vectors\n", stored)

		return c.JSON(http.StatusOK, models.StoreResponse{
			Success: true,
			Count:   stored,
		})
	}
}

// SearchVectorsHandler handles similarity search requests
// @Summary Search email vectors
// @Description Embeds the query text and returns the most similar stored emails
// @Tags vectors
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "Search request"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/vectors/search [post]
// @Security BearerAuth
func SearchVectorsHandler(store VectorStore, embedder Embedder) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SearchRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Details: err.Error(),
			})
		}

		if req.Query == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Query is required",
			})
		}

		topK := req.TopK
		if topK <= 0 {
			topK = rag.DefaultTopK
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), vectorOpTimeout)
		defer cancel()

		vectors, err := embedder.CreateEmbeddings(ctx, []string{req.Query})
		if err != nil || len(vectors) == 0 {
			fmt.Printf("[VECTORS] Query embedding failed: %v\n", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to embed query",
				Details: errDetails(err),
			})
		}

		matches, err := store.Query(ctx, vectors[0], topK, req.Filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Vector search failed",
				Details: err.Error(),
			})
		}

		return c.JSON(http.StatusOK, models.SearchResponse{
			Success: true,
			Matches: matches,
			Count:   len(matches),
		})
	}
}

// ListVectorsHandler handles listing the stored email metadata
// @Summary List stored emails
// @Description Walks the vector database and returns stored email metadata, bounded by a listing ceiling
// @Tags vectors
// @Produce json
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/vectors/list [get]
// @Security BearerAuth
func ListVectorsHandler(store VectorStore, listings *cache.ListingCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if listing, ok := listings.Get(listCacheKey); ok {
			return c.JSON(http.StatusOK, listing)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), vectorOpTimeout)
		defer cancel()

		matches, truncated, err := store.ListAll(ctx, listCeiling)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to list vectors",
				Details: err.Error(),
			})
		}

		listing := models.ListResponse{
			Success:   true,
			Emails:    matches,
			Count:     len(matches),
			Truncated: truncated,
		}
		listings.Set(listCacheKey, listing, cache.DefaultTTL)

		return c.JSON(http.StatusOK, listing)
	}
}

// ClearVectorsHandler handles wiping the vector database
// @Summary Clear stored vectors
// @Description Deletes every point from the vector database collection
// @Tags vectors
// @Produce json
// @Success 200 {object} models.ClearResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/vectors/clear [delete]
// @Security BearerAuth
func ClearVectorsHandler(store VectorStore, listings *cache.ListingCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), vectorOpTimeout)
		defer cancel()

		if err := store.DeleteAll(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to clear vectors",
				Details: err.Error(),
			})
		}

		listings.Invalidate()
		fmt.Printf("[VECTORS] Knowledge base cleared\n")

		return c.JSON(http.StatusOK, models.ClearResponse{
			Success: true,
			Message: "All vectors have been cleared from the knowledge base",
		})
	}
}

func errDetails(err error) string {
	if err == nil {
		return "embedding service returned no vectors"
	}
	return err.Error()
}
