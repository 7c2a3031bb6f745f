package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/caching"
	"github.com/NishantSagar12345/NextCellCRM/internal/common"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantRateLimit caps requests per tenant per window. A limit of zero
// disables it. Limiter errors let the request through.
func TenantRateLimit(cache caching.CacheService, limit int, window time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 || cache == nil {
			return next
		}

		return func(c echo.Context) error {
			tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
			if !ok {
				return next(c)
			}

			limited, err := cache.IsRateLimited(c.Request().Context(), tenantID.String(), limit, window)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				return next(c)
			}
			if limited {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, common.CreateErrorResponse(common.CodeRateLimited, "Rate limit exceeded", nil))
			}

			return next(c)
		}
	}
}
