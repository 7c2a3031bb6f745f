package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/caching"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool and repositories.Database
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and readiness endpoints
type HealthHandlers struct {
	db      Pinger
	cache   caching.CacheService
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance. cache may be nil.
func NewHealthHandlers(db Pinger, cache caching.CacheService, logger *zap.Logger) *HealthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// HealthCheck godoc
// @Summary  Liveness banner
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   / [get]
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "online",
		"message": "NexCell CRM Core Active",
	})
}

// ReadinessCheck godoc
// @Summary  Dependency readiness
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /health/ready [get]
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services := map[string]string{"database": "healthy"}
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		services["database"] = "unhealthy"
		ready = false
	}

	if h.cache != nil {
		services["cache"] = "healthy"
		if err := h.cache.Ping(ctx); err != nil {
			// cache failures degrade performance only
			h.logger.Warn("cache ping failed", zap.Error(err))
			services["cache"] = "degraded"
		}
	}

	if !ready {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not_ready",
			"message":  "Critical services unavailable",
			"services": services,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"message":  "All systems operational",
		"services": services,
	})
}
