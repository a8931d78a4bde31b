package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"emailogan/internal/emails"
	"emailogan/internal/models"

	"github.com/labstack/echo/v4"
)

const processTimeout = 120 * time.Second

// UploadEmailHandler handles .eml file uploads
// @Summary Upload an email file
// @Description Accepts a single .eml file and returns its parsed representation
// @Tags emails
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Email file (.eml)"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/emails/upload [post]
// @Security BearerAuth
func UploadEmailHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "No file provided",
			})
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".eml") {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Only .eml files are supported",
			})
		}

		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to open uploaded file",
				Details: err.Error(),
			})
		}
		defer src.Close()

		raw, err := io.ReadAll(src)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to read uploaded file",
				Details: err.Error(),
			})
		}

		email := emails.Parse(string(raw))
		fmt.Printf("[UPLOAD] Parsed %s (from=%s subject=%s)\n", fileHeader.Filename, email.From, email.Subject)

		return c.JSON(http.StatusOK, models.UploadResponse{
			Success: true,
			Email:   *email,
		})
	}
}

// ProcessEmailsHandler embeds a batch of emails
// @Summary Process emails into embeddings
// @Description Parses raw emails where needed and attaches embedding vectors. Failures are reported per item and do not abort the batch.
// @Tags emails
// @Accept json
// @Produce json
// @Param request body models.ProcessRequest true "Process request"
// @Success 200 {object} models.ProcessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/emails/process [post]
// @Security BearerAuth
func ProcessEmailsHandler(embedder Embedder) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ProcessRequest
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

		fmt.Printf("[PROCESS] Processing %d emails\n", len(req.Emails))

		ctx, cancel := context.WithTimeout(c.Request().Context(), processTimeout)
		defer cancel()

		processed := make([]models.ParsedEmail, 0, len(req.Emails))
		var itemErrors []models.ProcessItemError

		for i, item := range req.Emails {
			email, err := decodeProcessItem(item)
			if err == nil {
				err = embedEmail(ctx, embedder, email)
			}
			if err != nil {
				fmt.Printf("[PROCESS] Email %d failed: %v\n", i, err)
				itemErrors = append(itemErrors, models.ProcessItemError{
					Index: i,
					Error: err.Error(),
				})
				continue
			}
			processed = append(processed, *email)
		}

		fmt.Printf("[PROCESS] Done: %d processed, %d failed\n", len(processed), len(itemErrors))

		return c.JSON(http.StatusOK, models.ProcessResponse{
			Success:   len(itemErrors) == 0,
			Processed: len(processed),
			Failed:    len(itemErrors),
			Emails:    processed,
			Errors:    itemErrors,
		})
	}
}

// decodeProcessItem accepts either a raw email text blob (JSON string)
// or an already-parsed email object.
func decodeProcessItem(item json.RawMessage) (*models.ParsedEmail, error) {
	var raw string
	if err := json.Unmarshal(item, &raw); err == nil {
		return emails.Parse(raw), nil
	}

	var parsed models.ParsedEmail
	if err := json.Unmarshal(item, &parsed); err != nil {
		return nil, fmt.Errorf("item is neither a raw email string nor a parsed email object: %w", err)
	}
	if parsed.ID == "" {
		return nil, fmt.Errorf("parsed email is missing an id")
	}
	return &parsed, nil
}

func embedEmail(ctx context.Context, embedder Embedder, email *models.ParsedEmail) error {
	vectors, err := embedder.CreateEmbeddings(ctx, []string{emails.EmbeddingText(email)})
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("embedding service returned no vectors")
	}

	now := time.Now().UTC()
	email.Embedding = vectors[0]
	email.ProcessedAt = &now
	return nil
}
