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

type DealService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.DealInput) (*models.Deal, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.DealFilter) ([]*models.Deal, error)
}

type dealService struct {
	dealRepo repositories.DealRepository
	cache    caching.CacheService
	logger   *zap.Logger
}

func NewDealService(dealRepo repositories.DealRepository, cache caching.CacheService, logger *zap.Logger) DealService {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dealService{dealRepo: dealRepo, cache: cache, logger: logger}
}

func (s *dealService) Create(ctx context.Context, tenantID uuid.UUID, input *models.DealInput) (*models.Deal, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	if input == nil {
		return nil, common.NewValidationError("body", "request body is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	deal, err := s.dealRepo.Create(ctx, tenantID, input)
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.cache, s.logger, tenantID, caching.EntityDeals)
	return deal, nil
}

func (s *dealService) List(ctx context.Context, tenantID uuid.UUID, filter models.DealFilter) ([]*models.Deal, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	limit, offset, err := validatePage(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = limit, offset
	filter.Stage = common.NormalizeOptional(filter.Stage)

	signature := listSignature(limit, offset, stringPart("stage", filter.Stage), uuidPart("contact_id", filter.ContactID))
	return cachedList(ctx, s.cache, s.logger, tenantID, caching.EntityDeals, signature, func() ([]*models.Deal, error) {
		return s.dealRepo.List(ctx, tenantID, filter)
	})
}
