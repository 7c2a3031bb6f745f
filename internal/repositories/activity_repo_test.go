package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_CreateAndList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tenantID := uuid.New()
	repo := NewActivityRepo(mock)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO activities \(id, tenant_id, activity_type, description, created_at\)`).
		WithArgs(pgxmock.AnyArg(), tenantID, "call", stringPtr("left a voicemail")).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	activity, err := repo.Create(ctx, tenantID, &models.ActivityInput{ActivityType: "call", Description: stringPtr("left a voicemail")})
	require.NoError(t, err)
	assert.Equal(t, tenantID, activity.TenantID)

	activityType := "call"
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, tenant_id, activity_type, description, created_at FROM activities WHERE tenant_id = $1 AND activity_type = $2 ORDER BY created_at ASC, id ASC LIMIT 5",
	)).WithArgs(tenantID, activityType).
		WillReturnRows(pgxmock.NewRows(activityColumns).
			AddRow(activity.ID, tenantID, "call", (*string)(nil), time.Now().UTC()))

	activities, err := repo.List(ctx, tenantID, models.ActivityFilter{ActivityType: &activityType, Limit: 5})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, activity.ID, activities[0].ID)
	assert.Nil(t, activities[0].Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepo_ListTenantIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a, b := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT tenant_id FROM contacts\s+UNION SELECT tenant_id FROM deals`).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id"}).AddRow(a).AddRow(b))

	ids, err := NewTenantRepo(mock).ListTenantIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
