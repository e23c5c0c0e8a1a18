package handlers

import (
	"context"
	"net/http"
	"time"

	"resellerdesk/internal/caching"
	"resellerdesk/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db       repositories.DB
	cacheSvc caching.CacheService
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db repositories.DB, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck checks database and cache connectivity
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	_, err := h.db.Exec(ctx, "SELECT 1")
	return err
}

// LivenessCheck determines if the application is running
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
