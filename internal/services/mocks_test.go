package services

import (
	"context"
	"io"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, tenantID uuid.UUID, input *models.ContactInput) (*models.Contact, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, tenantID uuid.UUID, filter models.ContactFilter) ([]*models.Contact, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contact), args.Error(1)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, tenantID uuid.UUID, input *models.DealInput) (*models.Deal, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deal), args.Error(1)
}

func (m *MockDealRepository) List(ctx context.Context, tenantID uuid.UUID, filter models.DealFilter) ([]*models.Deal, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deal), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, tenantID uuid.UUID, input *models.ActivityInput) (*models.Activity, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityRepository) List(ctx context.Context, tenantID uuid.UUID, filter models.ActivityFilter) ([]*models.Activity, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Activity), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, tenantID uuid.UUID, input *models.AppointmentInput) (*models.Appointment, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockStorageService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

// MockCacheService records cache traffic; unmatched calls fail the test
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) ListGeneration(ctx context.Context, tenantID uuid.UUID, entity string) (int64, error) {
	args := m.Called(ctx, tenantID, entity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheService) GetList(ctx context.Context, tenantID uuid.UUID, entity, signature string, dest any) (bool, error) {
	args := m.Called(ctx, tenantID, entity, signature, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetList(ctx context.Context, tenantID uuid.UUID, entity, signature string, generation int64, value any) error {
	args := m.Called(ctx, tenantID, entity, signature, generation, value)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateList(ctx context.Context, tenantID uuid.UUID, entity string) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
