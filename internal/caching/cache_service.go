package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "nexcell"

// Entity names used to partition a tenant's list cache
const (
	EntityContacts     = "contacts"
	EntityDeals        = "deals"
	EntityActivities   = "activities"
	EntityAppointments = "appointments"
)

// CacheService caches tenant list results and backs the per-tenant rate limiter.
// Every key embeds the tenant id, so one tenant can never read another's entries.
type CacheService interface {
	// List caching. Each tenant+entity pair is one redis hash keyed by the query signature,
	// guarded by a generation counter that every invalidation bumps. SetList only stores
	// a result loaded under the current generation.
	ListGeneration(ctx context.Context, tenantID uuid.UUID, entity string) (int64, error)
	GetList(ctx context.Context, tenantID uuid.UUID, entity, signature string, dest any) (bool, error)
	SetList(ctx context.Context, tenantID uuid.UUID, entity, signature string, generation int64, value any) error
	InvalidateList(ctx context.Context, tenantID uuid.UUID, entity string) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient builds a go-redis client, accepting host:port or a redis:// URL
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		if password != "" {
			opts.Password = password
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), nil
}

func NewRedisCacheService(client *redis.Client, ttl time.Duration, logger *zap.Logger) CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisCacheService{client: client, ttl: ttl, logger: logger}
}

// ListKey is the hash holding every cached list query of one tenant and entity
func ListKey(tenantID uuid.UUID, entity string) string {
	return fmt.Sprintf("%s:list:%s:%s", keyPrefix, tenantID.String(), entity)
}

// GenerationKey counts invalidations of one tenant and entity. It has no TTL.
func GenerationKey(tenantID uuid.UUID, entity string) string {
	return fmt.Sprintf("%s:gen:%s:%s", keyPrefix, tenantID.String(), entity)
}

// RateLimitKey is the counter for one tenant in the current window
func RateLimitKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
}

// setListScript writes a list entry only while the generation read before
// loading is still current. KEYS: generation, list hash.
// ARGV: generation, signature, payload, ttl in milliseconds.
var setListScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[1])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[2], ARGV[2], ARGV[3])
if tonumber(ARGV[4]) > 0 then redis.call('PEXPIRE', KEYS[2], ARGV[4]) end
return 1
`)

func (r *redisCacheService) ListGeneration(ctx context.Context, tenantID uuid.UUID, entity string) (int64, error) {
	gen, err := r.client.Get(ctx, GenerationKey(tenantID, entity)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *redisCacheService) GetList(ctx context.Context, tenantID uuid.UUID, entity, signature string, dest any) (bool, error) {
	data, err := r.client.HGet(ctx, ListKey(tenantID, entity), signature).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetList(ctx context.Context, tenantID uuid.UUID, entity, signature string, generation int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	keys := []string{GenerationKey(tenantID, entity), ListKey(tenantID, entity)}
	stored, err := setListScript.Run(ctx, r.client, keys, generation, signature, data, r.ttl.Milliseconds()).Int()
	if err != nil {
		return err
	}
	if stored == 0 {
		r.logger.Debug("discarded list loaded before invalidation",
			zap.String("entity", entity),
			zap.String("tenant_id", tenantID.String()),
			zap.Int64("generation", generation),
		)
	}
	return nil
}

func (r *redisCacheService) InvalidateList(ctx context.Context, tenantID uuid.UUID, entity string) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, GenerationKey(tenantID, entity))
	pipe.Del(ctx, ListKey(tenantID, entity))
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := RateLimitKey(key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	// Set expiry on first request
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			r.logger.Warn("failed to set rate limit window", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type noopCacheService struct{}

// NewNoopCacheService is used when no redis server is configured
func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) ListGeneration(context.Context, uuid.UUID, string) (int64, error) {
	return 0, nil
}

func (noopCacheService) GetList(context.Context, uuid.UUID, string, string, any) (bool, error) {
	return false, nil
}

func (noopCacheService) SetList(context.Context, uuid.UUID, string, string, int64, any) error {
	return nil
}

func (noopCacheService) InvalidateList(context.Context, uuid.UUID, string) error {
	return nil
}

func (noopCacheService) IsRateLimited(context.Context, string, int, time.Duration) (bool, error) {
	return false, nil
}

func (noopCacheService) Ping(context.Context) error {
	return nil
}
