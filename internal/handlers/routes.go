package handlers

import (
	_ "github.com/NishantSagar12345/NextCellCRM/internal/docs"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler set. Exports is nil when object storage is not configured.
type Handlers struct {
	Health       *HealthHandlers
	Tenant       *TenantHandlers
	Contacts     *ContactHandlers
	Deals        *DealHandlers
	Activities   *ActivityHandlers
	Appointments *AppointmentHandlers
	Exports      *ExportHandlers
}

// ConfigureEcho installs the routing behaviour shared by the server and its tests
func ConfigureEcho(e *echo.Echo, logger *zap.Logger) {
	e.HideBanner = true
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
}

// RegisterRoutes mounts the public routes and the tenant-scoped routes.
// protected must start with the tenant gate; every data route goes through it.
func RegisterRoutes(e *echo.Echo, h Handlers, protected ...echo.MiddlewareFunc) {
	e.GET("/", h.Health.HealthCheck)
	e.GET("/health/ready", h.Health.ReadinessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/tenant-check", h.Tenant.TenantCheck, protected...)

	e.GET("/contacts", h.Contacts.ListContacts, protected...)
	e.POST("/contacts", h.Contacts.CreateContact, protected...)

	e.GET("/deals", h.Deals.ListDeals, protected...)
	e.POST("/deals", h.Deals.CreateDeal, protected...)

	e.GET("/activities", h.Activities.ListActivities, protected...)
	e.POST("/activities", h.Activities.CreateActivity, protected...)

	e.GET("/appointments", h.Appointments.ListAppointments, protected...)
	e.POST("/appointments", h.Appointments.CreateAppointment, protected...)

	if h.Exports != nil {
		e.POST("/exports", h.Exports.CreateExport, protected...)
	}
}
