package handlers

import (
	"net/http"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/labstack/echo/v4"
)

// AppointmentHandlers handles clinic appointment HTTP requests
type AppointmentHandlers struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandlers(appointmentService services.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{appointmentService: appointmentService}
}

// CreateAppointmentRequest is the body of POST /appointments.
// appointment_time accepts RFC 3339 or a zone-less ISO-8601 value read as UTC.
type CreateAppointmentRequest struct {
	PatientID        string `json:"patient_id" validate:"required,uuid"`
	PractitionerName string `json:"practitioner_name" validate:"required,max=200"`
	TreatmentType    string `json:"treatment_type,omitempty" validate:"max=100"`
	AppointmentTime  string `json:"appointment_time" validate:"required"`
	Status           string `json:"status,omitempty" validate:"max=50"`
}

// ListAppointments godoc
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Param        patient_id  query     string  false  "patient contact id"
// @Param        status      query     string  false  "exact status match"
// @Param        limit       query     int     false  "page size (0 = all)"
// @Param        offset      query     int     false  "rows to skip"
// @Success      200         {array}   models.Appointment
// @Failure      400         {object}  common.ErrorResponse
// @Failure      401         {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /appointments [get]
func (h *AppointmentHandlers) ListAppointments(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}
	patientID, err := optionalUUIDQuery(c, "patient_id")
	if err != nil {
		return err
	}

	appointments, err := h.appointmentService.List(c.Request().Context(), tenantID, models.AppointmentFilter{
		PatientID: patientID,
		Status:    optionalQuery(c, "status"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointments)
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        appointment  body      CreateAppointmentRequest  true  "appointment"
// @Success      201          {object}  models.Appointment
// @Failure      400          {object}  common.ErrorResponse
// @Failure      401          {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /appointments [post]
func (h *AppointmentHandlers) CreateAppointment(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req CreateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patientID, err := common.ValidateUUID(req.PatientID, "patient_id")
	if err != nil {
		return common.NewValidationError("patient_id", err.Error())
	}
	appointmentTime, err := common.ParseTimestamp(req.AppointmentTime, "appointment_time")
	if err != nil {
		return common.NewValidationError("appointment_time", err.Error())
	}

	appointment, err := h.appointmentService.Create(c.Request().Context(), tenantID, &models.AppointmentInput{
		PatientID:        patientID,
		PractitionerName: req.PractitionerName,
		TreatmentType:    req.TreatmentType,
		AppointmentTime:  appointmentTime,
		Status:           req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, appointment)
}
