package handlers

import (
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandlers triggers on-demand spreadsheet exports
type ExportHandlers struct {
	exportService services.ExportService
}

func NewExportHandlers(exportService services.ExportService) *ExportHandlers {
	return &ExportHandlers{exportService: exportService}
}

// CreateExport godoc
// @Summary      Export the tenant's records to a workbook
// @Description  Writes an xlsx workbook to object storage and returns a presigned download link
// @Tags         exports
// @Produce      json
// @Success      201  {object}  models.ExportResult
// @Failure      401  {object}  common.ErrorResponse
// @Failure      500  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /exports [post]
func (h *ExportHandlers) CreateExport(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	result, err := h.exportService.ExportTenant(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}
