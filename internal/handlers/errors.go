package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler renders every error as the standard error envelope.
// Internal error text never reaches the client; it is logged instead.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}

func errorResponse(err error) (int, *common.ErrorResponse) {
	var vErr *common.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, common.CreateErrorResponse(common.CodeValidation, "Validation failed", vErr.Fields)
	}

	if errors.Is(err, services.ErrUnauthenticated) || errors.Is(err, common.ErrTenantRequired) {
		return http.StatusUnauthorized, common.CreateErrorResponse(common.CodeUnauthorized, "Unauthorized access", nil)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := fmt.Sprint(he.Message)
		switch {
		case he.Code == http.StatusUnauthorized:
			return he.Code, common.CreateErrorResponse(common.CodeUnauthorized, "Unauthorized access", nil)
		case he.Code == http.StatusNotFound:
			return he.Code, common.CreateErrorResponse(common.CodeNotFound, message, nil)
		case he.Code == http.StatusTooManyRequests:
			return he.Code, common.CreateErrorResponse(common.CodeRateLimited, message, nil)
		case he.Code >= http.StatusInternalServerError:
			return http.StatusInternalServerError, common.CreateErrorResponse(common.CodeServer, "Internal server error", nil)
		default:
			return he.Code, common.CreateErrorResponse(common.CodeClient, message, nil)
		}
	}

	return http.StatusInternalServerError, common.CreateErrorResponse(common.CodeServer, "Internal server error", nil)
}

// requireTenant reads the verified tenant from the request context and fails closed
func requireTenant(c echo.Context) (uuid.UUID, error) {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	}
	return tenantID, nil
}

// bindAndValidate decodes the JSON body into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return c.Validate(req)
}

// pageParams reads limit and offset query parameters
func pageParams(c echo.Context) (limit, offset int, err error) {
	if err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError(); err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "limit and offset must be integers")
	}
	return limit, offset, nil
}

// optionalQuery returns a query parameter or nil when absent or blank
func optionalQuery(c echo.Context, name string) *string {
	value := c.QueryParam(name)
	return common.NormalizeOptional(&value)
}

// optionalUUIDQuery parses a UUID query filter; malformed values are client errors
func optionalUUIDQuery(c echo.Context, name string) (*uuid.UUID, error) {
	id, err := common.ParseOptionalUUID(c.QueryParam(name), name)
	if err != nil {
		return nil, common.NewValidationError(name, err.Error())
	}
	return id, nil
}
