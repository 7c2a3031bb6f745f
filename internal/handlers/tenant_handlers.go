package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TenantHandlers exposes the tenant resolved for the current request
type TenantHandlers struct{}

func NewTenantHandlers() *TenantHandlers {
	return &TenantHandlers{}
}

// TenantCheck godoc
// @Summary  Echo the verified tenant
// @Tags     tenant
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  401  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /tenant-check [get]
func (h *TenantHandlers) TenantCheck(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"active_tenant_id": tenantID.String(),
	})
}
