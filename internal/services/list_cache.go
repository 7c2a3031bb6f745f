package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/NishantSagar12345/NextCellCRM/internal/caching"
	"github.com/NishantSagar12345/NextCellCRM/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listSignature renders a deterministic cache field for a list query
func listSignature(limit, offset int, filters ...string) string {
	return fmt.Sprintf("%s|limit=%d|offset=%d", strings.Join(filters, "|"), limit, offset)
}

func uuidPart(name string, value *uuid.UUID) string {
	if value == nil {
		return name + "="
	}
	return name + "=" + value.String()
}

func stringPart(name string, value *string) string {
	return name + "=" + common.SafeString(value)
}

// validatePage applies the shared pagination rules to a list request
func validatePage(limit, offset int) (int, int, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		field := "limit"
		if strings.HasPrefix(err.Error(), "offset") {
			field = "offset"
		}
		return 0, 0, common.NewValidationError(field, err.Error())
	}
	return limit, offset, nil
}

// cachedList reads through the tenant-keyed list cache. Cache failures are
// logged and never fail the request. The generation is read before loading so
// a result that raced with a write is never stored.
func cachedList[T any](ctx context.Context, cache caching.CacheService, logger *zap.Logger, tenantID uuid.UUID, entity, signature string, load func() ([]T, error)) ([]T, error) {
	generation, err := cache.ListGeneration(ctx, tenantID, entity)
	if err != nil {
		logger.Warn("list cache generation read failed", zap.String("entity", entity), zap.Error(err))
		return load()
	}

	var cached []T
	hit, err := cache.GetList(ctx, tenantID, entity, signature, &cached)
	if err != nil {
		logger.Warn("list cache read failed", zap.String("entity", entity), zap.Error(err))
	} else if hit && cached != nil {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if err := cache.SetList(ctx, tenantID, entity, signature, generation, items); err != nil {
		logger.Warn("list cache write failed", zap.String("entity", entity), zap.Error(err))
	}
	return items, nil
}

func invalidateList(ctx context.Context, cache caching.CacheService, logger *zap.Logger, tenantID uuid.UUID, entity string) {
	if err := cache.InvalidateList(ctx, tenantID, entity); err != nil {
		logger.Warn("list cache invalidation failed",
			zap.String("entity", entity),
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}
