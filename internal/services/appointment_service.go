package services

import (
	"context"

	"github.com/NishantSagar12345/NextCellCRM/internal/caching"
	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"
	"github.com/NishantSagar12345/NextCellCRM/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.AppointmentInput) (*models.Appointment, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error)
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	cache           caching.CacheService
	logger          *zap.Logger
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, cache caching.CacheService, logger *zap.Logger) AppointmentService {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &appointmentService{appointmentRepo: appointmentRepo, cache: cache, logger: logger}
}

func (s *appointmentService) Create(ctx context.Context, tenantID uuid.UUID, input *models.AppointmentInput) (*models.Appointment, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	if input == nil {
		return nil, common.NewValidationError("body", "request body is required")
	}

	input.ApplyDefaults()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	appointment, err := s.appointmentRepo.Create(ctx, tenantID, input)
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.cache, s.logger, tenantID, caching.EntityAppointments)
	return appointment, nil
}

func (s *appointmentService) List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	limit, offset, err := validatePage(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = limit, offset
	filter.Status = common.NormalizeOptional(filter.Status)

	signature := listSignature(limit, offset, uuidPart("patient_id", filter.PatientID), stringPart("status", filter.Status))
	return cachedList(ctx, s.cache, s.logger, tenantID, caching.EntityAppointments, signature, func() ([]*models.Appointment, error) {
		return s.appointmentRepo.List(ctx, tenantID, filter)
	})
}
