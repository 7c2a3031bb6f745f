package repositories

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository answers cross-tenant questions for system jobs.
// Tenants have no table of their own; they exist through their records.
type TenantRepository interface {
	ListTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT tenant_id FROM contacts
		UNION SELECT tenant_id FROM deals
		UNION SELECT tenant_id FROM activities
		UNION SELECT tenant_id FROM appointments
		ORDER BY tenant_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapStoreError("list tenants", err)
	}
	defer rows.Close()

	tenantIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, mapStoreError("scan tenant", err)
		}
		tenantIDs = append(tenantIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("list tenants", err)
	}
	return tenantIDs, nil
}
