package repositories

import (
	"context"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
)

var contactColumns = []string{"id", "tenant_id", "first_name", "last_name", "email", "phone", "created_at"}

type ContactRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.ContactInput) (*models.Contact, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.ContactFilter) ([]*models.Contact, error)
}

type contactRepo struct {
	db Database
}

func NewContactRepo(db Database) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, tenantID uuid.UUID, input *models.ContactInput) (*models.Contact, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	contact := &models.Contact{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	query := `
		INSERT INTO contacts (id, tenant_id, first_name, last_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, contact.ID, contact.TenantID, contact.FirstName, contact.LastName, contact.Email, contact.Phone).
		Scan(&contact.CreatedAt)
	if err != nil {
		return nil, mapStoreError("create contact", err)
	}
	return contact, nil
}

func (r *contactRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.ContactFilter) ([]*models.Contact, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	q := tenantSelect("contacts", tenantID, contactColumns...)
	if filter.Email != nil {
		q = q.Where("email = ?", *filter.Email)
	}
	query, args, err := orderAndPage(q, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, mapStoreError("build contact query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("list contacts", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.TenantID, &contact.FirstName, &contact.LastName, &contact.Email, &contact.Phone, &contact.CreatedAt); err != nil {
			return nil, mapStoreError("scan contact", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("list contacts", err)
	}
	return contacts, nil
}
