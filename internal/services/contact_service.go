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

type ContactService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.ContactInput) (*models.Contact, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.ContactFilter) ([]*models.Contact, error)
}

type contactService struct {
	contactRepo repositories.ContactRepository
	cache       caching.CacheService
	logger      *zap.Logger
}

func NewContactService(contactRepo repositories.ContactRepository, cache caching.CacheService, logger *zap.Logger) ContactService {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contactService{contactRepo: contactRepo, cache: cache, logger: logger}
}

func (s *contactService) Create(ctx context.Context, tenantID uuid.UUID, input *models.ContactInput) (*models.Contact, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	if input == nil {
		return nil, common.NewValidationError("body", "request body is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.Create(ctx, tenantID, input)
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.cache, s.logger, tenantID, caching.EntityContacts)
	return contact, nil
}

func (s *contactService) List(ctx context.Context, tenantID uuid.UUID, filter models.ContactFilter) ([]*models.Contact, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	limit, offset, err := validatePage(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = limit, offset
	filter.Email = common.NormalizeOptional(filter.Email)

	signature := listSignature(limit, offset, stringPart("email", filter.Email))
	return cachedList(ctx, s.cache, s.logger, tenantID, caching.EntityContacts, signature, func() ([]*models.Contact, error) {
		return s.contactRepo.List(ctx, tenantID, filter)
	})
}
