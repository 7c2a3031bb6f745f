package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/config"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTestEcho(t *testing.T, calls *int) *echo.Echo {
	t.Helper()

	resolver, err := services.NewJWTTenantResolver(config.JWTConfig{
		Secret:      testSecret,
		Algorithm:   "HS256",
		TenantClaim: "tenant_id",
	}, nil)
	require.NoError(t, err)

	e := echo.New()
	e.Use(TenantContext(resolver, nil))
	e.GET("/whoami", func(c echo.Context) error {
		*calls++
		tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, tenantID.String())
	})
	return e
}

func TestTenantContext_ValidToken(t *testing.T) {
	calls := 0
	e := newTestEcho(t, &calls)

	tenantID := uuid.New()
	token, err := services.SignTenantToken([]byte(testSecret), "HS256", tenantID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenantID.String(), rec.Body.String())
	assert.Equal(t, 1, calls)
}

func TestTenantContext_Rejections(t *testing.T) {
	noClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	validToken, err := services.SignTenantToken([]byte(testSecret), "HS256", uuid.New(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic " + validToken},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer abc.def.ghi"},
		{"missing tenant claim", "Bearer " + noClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			e := newTestEcho(t, &calls)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, 0, calls, "handler must not run")
		})
	}
}
