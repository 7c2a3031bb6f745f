package handlers

import (
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/models"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/labstack/echo/v4"
)

// ContactHandlers handles contact-related HTTP requests
type ContactHandlers struct {
	contactService services.ContactService
}

// NewContactHandlers creates a new contact handlers instance
func NewContactHandlers(contactService services.ContactService) *ContactHandlers {
	return &ContactHandlers{contactService: contactService}
}

// CreateContactRequest is the body of POST /contacts.
// tenant_id is not a field: any value sent by the client is dropped.
type CreateContactRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// ListContacts godoc
// @Summary      List contacts
// @Description  Lists the caller's contacts, oldest first
// @Tags         contacts
// @Produce      json
// @Param        email   query     string  false  "exact email match"
// @Param        limit   query     int     false  "page size (0 = all)"
// @Param        offset  query     int     false  "rows to skip"
// @Success      200     {array}   models.Contact
// @Failure      400     {object}  common.ErrorResponse
// @Failure      401     {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /contacts [get]
func (h *ContactHandlers) ListContacts(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}

	contacts, err := h.contactService.List(c.Request().Context(), tenantID, models.ContactFilter{
		Email:  optionalQuery(c, "email"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contacts)
}

// CreateContact godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        contact  body      CreateContactRequest  true  "contact"
// @Success      201      {object}  models.Contact
// @Failure      400      {object}  common.ErrorResponse
// @Failure      401      {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandlers) CreateContact(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req CreateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contactService.Create(c.Request().Context(), tenantID, &models.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, contact)
}
