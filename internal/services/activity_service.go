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

type ActivityService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.ActivityInput) (*models.Activity, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.ActivityFilter) ([]*models.Activity, error)
}

type activityService struct {
	activityRepo repositories.ActivityRepository
	cache        caching.CacheService
	logger       *zap.Logger
}

func NewActivityService(activityRepo repositories.ActivityRepository, cache caching.CacheService, logger *zap.Logger) ActivityService {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &activityService{activityRepo: activityRepo, cache: cache, logger: logger}
}

func (s *activityService) Create(ctx context.Context, tenantID uuid.UUID, input *models.ActivityInput) (*models.Activity, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	if input == nil {
		return nil, common.NewValidationError("body", "request body is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.Create(ctx, tenantID, input)
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.cache, s.logger, tenantID, caching.EntityActivities)
	return activity, nil
}

func (s *activityService) List(ctx context.Context, tenantID uuid.UUID, filter models.ActivityFilter) ([]*models.Activity, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	limit, offset, err := validatePage(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = limit, offset
	filter.ActivityType = common.NormalizeOptional(filter.ActivityType)

	signature := listSignature(limit, offset, stringPart("activity_type", filter.ActivityType))
	return cachedList(ctx, s.cache, s.logger, tenantID, caching.EntityActivities, signature, func() ([]*models.Activity, error) {
		return s.activityRepo.List(ctx, tenantID, filter)
	})
}
