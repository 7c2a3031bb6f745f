package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/caching"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// slowContactRepo copies its rows when List starts and, while paused, holds the
// copy until resumed, so a Create can commit between the read and the cache write.
type slowContactRepo struct {
	mu     sync.Mutex
	rows   []*models.Contact
	pause  bool
	loaded chan struct{}
	resume chan struct{}
}

func newSlowContactRepo() *slowContactRepo {
	return &slowContactRepo{loaded: make(chan struct{}), resume: make(chan struct{})}
}

func (r *slowContactRepo) Create(_ context.Context, tenantID uuid.UUID, input *models.ContactInput) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &models.Contact{ID: uuid.New(), TenantID: tenantID, FirstName: input.FirstName, LastName: input.LastName, CreatedAt: time.Now().UTC()}
	r.rows = append(r.rows, c)
	return c, nil
}

func (r *slowContactRepo) List(_ context.Context, _ uuid.UUID, _ models.ContactFilter) ([]*models.Contact, error) {
	r.mu.Lock()
	rows := append([]*models.Contact{}, r.rows...)
	pause := r.pause
	r.pause = false
	r.mu.Unlock()

	if pause {
		close(r.loaded)
		<-r.resume
	}
	return rows, nil
}

func TestContactList_WriteDuringLoadIsNotHiddenByCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := caching.NewRedisCacheService(client, time.Minute, zap.NewNop())

	repo := newSlowContactRepo()
	repo.pause = true
	svc := NewContactService(repo, cache, zap.NewNop())

	ctx := context.Background()
	tenantID := uuid.New()

	type listResult struct {
		rows []*models.Contact
		err  error
	}
	first := make(chan listResult, 1)
	go func() {
		rows, err := svc.List(ctx, tenantID, models.ContactFilter{})
		first <- listResult{rows, err}
	}()

	<-repo.loaded
	created, err := svc.Create(ctx, tenantID, &models.ContactInput{FirstName: "Grace", LastName: "Hopper"})
	require.NoError(t, err)
	close(repo.resume)

	res := <-first
	require.NoError(t, res.err)
	assert.Empty(t, res.rows)

	rows, err := svc.List(ctx, tenantID, models.ContactFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	// the fresh result is cached under the current generation
	assert.True(t, mr.Exists(caching.ListKey(tenantID, caching.EntityContacts)))
}

func TestCachedList_GenerationReadFailureBypassesCache(t *testing.T) {
	mockCache := new(MockCacheService)
	tenantID := uuid.New()
	mockCache.On("ListGeneration", context.Background(), tenantID, caching.EntityDeals).Return(int64(0), assert.AnError)

	calls := 0
	rows, err := cachedList(context.Background(), mockCache, zap.NewNop(), tenantID, caching.EntityDeals, "all", func() ([]int, error) {
		calls++
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, rows)
	assert.Equal(t, 1, calls)
	mockCache.AssertNumberOfCalls(t, "GetList", 0)
	mockCache.AssertNumberOfCalls(t, "SetList", 0)
}
