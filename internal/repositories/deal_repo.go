package repositories

import (
	"context"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
)

var dealColumns = []string{"id", "tenant_id", "title", "amount", "stage", "contact_id", "created_at"}

type DealRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.DealInput) (*models.Deal, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.DealFilter) ([]*models.Deal, error)
}

type dealRepo struct {
	db      Database
	linkage Linkage
}

func NewDealRepo(db Database, linkage Linkage) DealRepository {
	return &dealRepo{db: db, linkage: linkage}
}

func (r *dealRepo) Create(ctx context.Context, tenantID uuid.UUID, input *models.DealInput) (*models.Deal, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	deal := &models.Deal{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Title:     input.Title,
		Amount:    input.Amount,
		Stage:     input.Stage,
		ContactID: input.ContactID,
	}

	query := `
		INSERT INTO deals (id, tenant_id, title, amount, stage, contact_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := r.linkage.insertWithLinkage(ctx, r.db, tenantID, deal.ContactID, "contact_id", "deal", func(q queryRower) error {
		err := q.QueryRow(ctx, query, deal.ID, deal.TenantID, deal.Title, deal.Amount, deal.Stage, deal.ContactID).
			Scan(&deal.CreatedAt)
		return mapStoreError("create deal", err)
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func (r *dealRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.DealFilter) ([]*models.Deal, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	q := tenantSelect("deals", tenantID, dealColumns...)
	if filter.Stage != nil {
		q = q.Where("stage = ?", *filter.Stage)
	}
	if filter.ContactID != nil {
		q = q.Where("contact_id = ?", *filter.ContactID)
	}
	query, args, err := orderAndPage(q, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, mapStoreError("build deal query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("list deals", err)
	}
	defer rows.Close()

	deals := make([]*models.Deal, 0)
	for rows.Next() {
		deal := &models.Deal{}
		if err := rows.Scan(&deal.ID, &deal.TenantID, &deal.Title, &deal.Amount, &deal.Stage, &deal.ContactID, &deal.CreatedAt); err != nil {
			return nil, mapStoreError("scan deal", err)
		}
		deals = append(deals, deal)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("list deals", err)
	}
	return deals, nil
}
