package handlers

import (
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/labstack/echo/v4"
)

// DealHandlers handles deal-related HTTP requests
type DealHandlers struct {
	dealService services.DealService
}

func NewDealHandlers(dealService services.DealService) *DealHandlers {
	return &DealHandlers{dealService: dealService}
}

type CreateDealRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Amount    *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Stage     *string  `json:"stage,omitempty" validate:"omitempty,max=50"`
	ContactID *string  `json:"contact_id,omitempty" validate:"omitempty,uuid"`
}

// ListDeals godoc
// @Summary      List deals
// @Tags         deals
// @Produce      json
// @Param        stage       query     string  false  "exact stage match"
// @Param        contact_id  query     string  false  "linked contact"
// @Param        limit       query     int     false  "page size (0 = all)"
// @Param        offset      query     int     false  "rows to skip"
// @Success      200         {array}   models.Deal
// @Failure      400         {object}  common.ErrorResponse
// @Failure      401         {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /deals [get]
func (h *DealHandlers) ListDeals(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}
	contactID, err := optionalUUIDQuery(c, "contact_id")
	if err != nil {
		return err
	}

	deals, err := h.dealService.List(c.Request().Context(), tenantID, models.DealFilter{
		Stage:     optionalQuery(c, "stage"),
		ContactID: contactID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deals)
}

// CreateDeal godoc
// @Summary      Create a deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        deal  body      CreateDealRequest  true  "deal"
// @Success      201   {object}  models.Deal
// @Failure      400   {object}  common.ErrorResponse
// @Failure      401   {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /deals [post]
func (h *DealHandlers) CreateDeal(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req CreateDealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &models.DealInput{
		Title: req.Title,
		Stage: req.Stage,
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}
	if req.ContactID != nil {
		contactID, err := common.ParseOptionalUUID(*req.ContactID, "contact_id")
		if err != nil {
			return common.NewValidationError("contact_id", err.Error())
		}
		input.ContactID = contactID
	}

	deal, err := h.dealService.Create(c.Request().Context(), tenantID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, deal)
}
