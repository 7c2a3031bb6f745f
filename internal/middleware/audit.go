package middleware

import (
	"net/http"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuditMiddleware writes a structured audit line for every mutating request
type AuditMiddleware struct {
	logger *zap.Logger
}

// NewAuditMiddleware creates a new audit middleware instance
func NewAuditMiddleware(logger *zap.Logger) *AuditMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditMiddleware{logger: logger.Named("audit")}
}

// AuditRequest logs writes with the acting tenant. Reads are not audited.
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			if !isMutation(c.Request().Method) {
				return err
			}

			tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
			if !ok {
				return err
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			m.logger.Info("tenant write",
				zap.String("tenant_id", tenantID.String()),
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
