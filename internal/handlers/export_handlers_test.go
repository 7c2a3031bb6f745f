package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockExportService struct {
	mock.Mock
}

func (m *mockExportService) ExportTenant(ctx context.Context, tenantID uuid.UUID) (*models.ExportResult, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExportResult), args.Error(1)
}

func (m *mockExportService) ExportAll(ctx context.Context) ([]*models.ExportResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExportResult), args.Error(1)
}

func (s *APISuite) TestCreateExportUsesTokenTenant() {
	exports := &mockExportService{}
	s.mount(NewExportHandlers(exports))

	key := "tenants/" + s.tenantA.String() + "/exports/20250601T123000.000000000Z-" + uuid.NewString() + ".xlsx"
	exports.On("ExportTenant", mock.Anything, s.tenantA).Return(&models.ExportResult{
		TenantID:  s.tenantA,
		Bucket:    "exports",
		ObjectKey: key,
		URL:       "https://storage.local/exports/a",
		Contacts:  2,
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}, nil).Once()

	rec := s.do(http.MethodPost, "/exports?tenant_id="+s.tenantB.String(), s.tokenA, `{"tenant_id":"`+s.tenantB.String()+`"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]interface{}
	s.decode(rec, &body)
	s.Equal(key, body["object_key"])
	s.Equal(s.tenantA.String(), body["tenant_id"])
	s.Equal(float64(2), body["contacts"])

	exports.AssertExpectations(s.T())
	exports.AssertNotCalled(s.T(), "ExportTenant", mock.Anything, s.tenantB)
}

func (s *APISuite) TestCreateExportStorageFailure() {
	exports := &mockExportService{}
	s.mount(NewExportHandlers(exports))

	exports.On("ExportTenant", mock.Anything, s.tenantA).
		Return(nil, errors.New("upload export: bucket exports does not exist")).Once()

	rec := s.do(http.MethodPost, "/exports", s.tokenA, "")
	s.Equal(http.StatusInternalServerError, rec.Code)
	resp := s.errorCode(rec)
	s.Equal(common.CodeServer, resp.Error.Code)
	s.Equal("Internal server error", resp.Error.Message)
	s.NotContains(rec.Body.String(), "bucket")
	exports.AssertExpectations(s.T())
}

func (s *APISuite) TestCreateExportRequiresToken() {
	exports := &mockExportService{}
	s.mount(NewExportHandlers(exports))

	rec := s.do(http.MethodPost, "/exports", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(common.CodeUnauthorized, s.errorCode(rec).Error.Code)
	exports.AssertNotCalled(s.T(), "ExportTenant", mock.Anything, mock.Anything)
}
