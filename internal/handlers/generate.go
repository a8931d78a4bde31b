package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"emailogan/internal/models"
	"emailogan/internal/rag"

	"github.com/labstack/echo/v4"
)

const generateTimeout = 90 * time.Second

// GenerateResponseHandler handles reply draft generation requests
// @Summary Generate an email reply
// @Description Drafts a reply to the given email text, grounded on similar emails from the knowledge base when enabled
// @Tags generate
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Generate request"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/generate/response [post]
// @Security BearerAuth
func GenerateResponseHandler(builder *rag.ContextBuilder, generator *rag.Generator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.GenerateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Details: err.Error(),
			})
		}

		if req.Prompt == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Prompt is required",
			})
		}

		style := rag.NormalizeStyle(req.Style)
		useKB := req.UseKnowledgeBase == nil || *req.UseKnowledgeBase

		fmt.Printf("[GENERATE] style=%s use_knowledge_base=%t\n", style, useKB)

		ctx, cancel := context.WithTimeout(c.Request().Context(), generateTimeout)
		defer cancel()

		var contextBlock string
		var matches []models.RetrievalMatch
		if useKB {
			var err error
			contextBlock, matches, err = builder.Build(ctx, req.Prompt, rag.DefaultTopK)
			if err != nil {
				fmt.Printf("[GENERATE] Context retrieval failed: %v\n", err)
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error:   "Failed to retrieve context from knowledge base",
					Details: err.Error(),
				})
			}
			fmt.Printf("[GENERATE] Retrieved %d context emails\n", len(matches))
		}

		reply, err := generator.GenerateReply(ctx, req.Prompt, style, contextBlock, matches)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to generate response",
				Details: err.Error(),
			})
		}

		return c.JSON(http.StatusOK, models.GenerateResponse{
			Success:      true,
			Response:     reply.Response,
			Style:        reply.Style,
			SourceEmails: reply.SourceEmails,
		})
	}
}
