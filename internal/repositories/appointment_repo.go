package repositories

import (
	"context"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
)

var appointmentColumns = []string{"id", "tenant_id", "patient_id", "practitioner_name", "treatment_type", "appointment_time", "status", "created_at"}

type AppointmentRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *models.AppointmentInput) (*models.Appointment, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error)
}

type appointmentRepo struct {
	db      Database
	linkage Linkage
}

func NewAppointmentRepo(db Database, linkage Linkage) AppointmentRepository {
	return &appointmentRepo{db: db, linkage: linkage}
}

func (r *appointmentRepo) Create(ctx context.Context, tenantID uuid.UUID, input *models.AppointmentInput) (*models.Appointment, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	appointment := &models.Appointment{
		ID:               uuid.New(),
		TenantID:         tenantID,
		PatientID:        input.PatientID,
		PractitionerName: input.PractitionerName,
		TreatmentType:    input.TreatmentType,
		AppointmentTime:  input.AppointmentTime.UTC(),
		Status:           input.Status,
	}

	query := `
		INSERT INTO appointments (id, tenant_id, patient_id, practitioner_name, treatment_type, appointment_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	patientID := appointment.PatientID
	err := r.linkage.insertWithLinkage(ctx, r.db, tenantID, &patientID, "patient_id", "appointment", func(q queryRower) error {
		err := q.QueryRow(ctx, query, appointment.ID, appointment.TenantID, appointment.PatientID, appointment.PractitionerName,
			appointment.TreatmentType, appointment.AppointmentTime, appointment.Status).
			Scan(&appointment.CreatedAt)
		return mapStoreError("create appointment", err)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	q := tenantSelect("appointments", tenantID, appointmentColumns...)
	if filter.PatientID != nil {
		q = q.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	query, args, err := orderAndPage(q, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, mapStoreError("build appointment query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("list appointments", err)
	}
	defer rows.Close()

	appointments := make([]*models.Appointment, 0)
	for rows.Next() {
		a := &models.Appointment{}
		if err := rows.Scan(&a.ID, &a.TenantID, &a.PatientID, &a.PractitionerName, &a.TreatmentType, &a.AppointmentTime, &a.Status, &a.CreatedAt); err != nil {
			return nil, mapStoreError("scan appointment", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("list appointments", err)
	}
	return appointments, nil
}
