package repositories

import (
	"context"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
)

var activityColumns = []string{"id", "tenant_id", "activity_type", "description", "created_at"}

type ActivityRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.ActivityInput) (*models.Activity, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.ActivityFilter) ([]*models.Activity, error)
}

type activityRepo struct {
	db Database
}

func NewActivityRepo(db Database) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, tenantID uuid.UUID, input *models.ActivityInput) (*models.Activity, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	activity := &models.Activity{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ActivityType: input.ActivityType,
		Description:  input.Description,
	}

	query := `
		INSERT INTO activities (id, tenant_id, activity_type, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, activity.ID, activity.TenantID, activity.ActivityType, activity.Description).
		Scan(&activity.CreatedAt)
	if err != nil {
		return nil, mapStoreError("create activity", err)
	}
	return activity, nil
}

func (r *activityRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.ActivityFilter) ([]*models.Activity, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	q := tenantSelect("activities", tenantID, activityColumns...)
	if filter.ActivityType != nil {
		q = q.Where("activity_type = ?", *filter.ActivityType)
	}
	query, args, err := orderAndPage(q, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, mapStoreError("build activity query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("list activities", err)
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		activity := &models.Activity{}
		if err := rows.Scan(&activity.ID, &activity.TenantID, &activity.ActivityType, &activity.Description, &activity.CreatedAt); err != nil {
			return nil, mapStoreError("scan activity", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("list activities", err)
	}
	return activities, nil
}
