package handlers

import (
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/models"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/labstack/echo/v4"
)

type ActivityHandlers struct {
	activityService services.ActivityService
}

func NewActivityHandlers(activityService services.ActivityService) *ActivityHandlers {
	return &ActivityHandlers{activityService: activityService}
}

type CreateActivityRequest struct {
	ActivityType string  `json:"activity_type" validate:"required,max=50"`
	Description  *string `json:"description,omitempty"`
}

// ListActivities godoc
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Param        activity_type  query     string  false  "exact type match"
// @Param        limit          query     int     false  "page size (0 = all)"
// @Param        offset         query     int     false  "rows to skip"
// @Success      200            {array}   models.Activity
// @Failure      401            {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /activities [get]
func (h *ActivityHandlers) ListActivities(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}

	activities, err := h.activityService.List(c.Request().Context(), tenantID, models.ActivityFilter{
		ActivityType: optionalQuery(c, "activity_type"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, activities)
}

// CreateActivity godoc
// @Summary      Log an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        activity  body      CreateActivityRequest  true  "activity"
// @Success      201       {object}  models.Activity
// @Failure      400       {object}  common.ErrorResponse
// @Failure      401       {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /activities [post]
func (h *ActivityHandlers) CreateActivity(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req CreateActivityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	activity, err := h.activityService.Create(c.Request().Context(), tenantID, &models.ActivityInput{
		ActivityType: req.ActivityType,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, activity)
}
