package handlers

import (
	"context"
	"net/http"
	"time"

	"emailogan/internal/models"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles basic health check requests
// @Summary Health check
// @Description Returns the service status and version
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func HealthHandler(version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := models.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Version:   version,
		}

		return c.JSON(http.StatusOK, response)
	}
}

// VectorHealthHandler handles vector database health check requests
// @Summary Vector database health check
// @Description Checks connectivity to the vector database and reports latency and point count
// @Tags health
// @Produce json
// @Success 200 {object} models.VectorHealthResponse
// @Failure 503 {object} models.VectorHealthResponse
// @Router /healthz/vector [get]
func VectorHealthHandler(store VectorStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := models.VectorHealthResponse{
			Status:    "unknown",
			Timestamp: time.Now().UTC(),
			Connected: false,
			Latency:   0,
		}

		if store == nil {
			response.Status = "unhealthy"
			response.Error = "Vector store not initialized"
			return c.JSON(http.StatusServiceUnavailable, response)
		}

		// Measure health check latency
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := store.HealthCheck(ctx)
		response.Latency = time.Since(start)

		if err != nil {
			response.Status = "unhealthy"
			response.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, response)
		}

		points, err := store.Count(ctx)
		if err != nil {
			response.Status = "unhealthy"
			response.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, response)
		}

		response.Status = "healthy"
		response.Connected = true
		response.Points = points

		return c.JSON(http.StatusOK, response)
	}
}

// RootHandler handles requests to the root endpoint
func RootHandler(version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Emailogan API",
			"version": version,
			"status":  "running",
		})
	}
}
