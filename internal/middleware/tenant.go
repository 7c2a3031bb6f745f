package middleware

import (
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantContextKey is the echo context key holding the resolved tenant id
const TenantContextKey = "tenant_id"

// TenantContext rejects requests without a valid bearer credential and stores
// the credential's tenant in the request context. Nothing downstream runs on failure.
func TenantContext(resolver services.TenantResolver, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  TenantContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return resolver.ResolveTenant(c.Request().Context(), auth)
		},
		SuccessHandler: func(c echo.Context) {
			tenantID, ok := c.Get(TenantContextKey).(uuid.UUID)
			if !ok {
				return
			}
			ctx := common.WithTenantID(c.Request().Context(), tenantID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Debug("request rejected by tenant gate",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
		},
	})
}
