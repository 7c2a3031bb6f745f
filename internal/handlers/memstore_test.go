package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
)

// memStore backs the four repositories with tenant-partitioned slices
type memStore struct {
	mu           sync.Mutex
	clock        time.Time
	contacts     []*models.Contact
	deals        []*models.Deal
	activities   []*models.Activity
	appointments []*models.Appointment
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return make([]T, 0)
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func (s *memStore) contactCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

type memContactRepo struct{ s *memStore }

func (r memContactRepo) Create(_ context.Context, tenantID uuid.UUID, in *models.ContactInput) (*models.Contact, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	contact := &models.Contact{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: r.s.tick(),
	}
	r.s.contacts = append(r.s.contacts, contact)
	return contact, nil
}

func (r memContactRepo) List(_ context.Context, tenantID uuid.UUID, f models.ContactFilter) ([]*models.Contact, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.Contact, 0)
	for _, c := range r.s.contacts {
		if c.TenantID != tenantID {
			continue
		}
		if f.Email != nil && (c.Email == nil || *c.Email != *f.Email) {
			continue
		}
		out = append(out, c)
	}
	return page(out, f.Limit, f.Offset), nil
}

type memDealRepo struct{ s *memStore }

func (r memDealRepo) Create(_ context.Context, tenantID uuid.UUID, in *models.DealInput) (*models.Deal, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deal := &models.Deal{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Title:     in.Title,
		Amount:    in.Amount,
		Stage:     in.Stage,
		ContactID: in.ContactID,
		CreatedAt: r.s.tick(),
	}
	r.s.deals = append(r.s.deals, deal)
	return deal, nil
}

func (r memDealRepo) List(_ context.Context, tenantID uuid.UUID, f models.DealFilter) ([]*models.Deal, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.Deal, 0)
	for _, d := range r.s.deals {
		if d.TenantID != tenantID {
			continue
		}
		if f.Stage != nil && (d.Stage == nil || *d.Stage != *f.Stage) {
			continue
		}
		if f.ContactID != nil && (d.ContactID == nil || *d.ContactID != *f.ContactID) {
			continue
		}
		out = append(out, d)
	}
	return page(out, f.Limit, f.Offset), nil
}

type memActivityRepo struct{ s *memStore }

func (r memActivityRepo) Create(_ context.Context, tenantID uuid.UUID, in *models.ActivityInput) (*models.Activity, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	activity := &models.Activity{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ActivityType: in.ActivityType,
		Description:  in.Description,
		CreatedAt:    r.s.tick(),
	}
	r.s.activities = append(r.s.activities, activity)
	return activity, nil
}

func (r memActivityRepo) List(_ context.Context, tenantID uuid.UUID, f models.ActivityFilter) ([]*models.Activity, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.Activity, 0)
	for _, a := range r.s.activities {
		if a.TenantID != tenantID {
			continue
		}
		if f.ActivityType != nil && a.ActivityType != *f.ActivityType {
			continue
		}
		out = append(out, a)
	}
	return page(out, f.Limit, f.Offset), nil
}

type memAppointmentRepo struct{ s *memStore }

func (r memAppointmentRepo) Create(_ context.Context, tenantID uuid.UUID, in *models.AppointmentInput) (*models.Appointment, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	appointment := &models.Appointment{
		ID:               uuid.New(),
		TenantID:         tenantID,
		PatientID:        in.PatientID,
		PractitionerName: in.PractitionerName,
		TreatmentType:    in.TreatmentType,
		AppointmentTime:  in.AppointmentTime.UTC(),
		Status:           in.Status,
		CreatedAt:        r.s.tick(),
	}
	r.s.appointments = append(r.s.appointments, appointment)
	return appointment, nil
}

func (r memAppointmentRepo) List(_ context.Context, tenantID uuid.UUID, f models.AppointmentFilter) ([]*models.Appointment, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.TenantID != tenantID {
			continue
		}
		if f.PatientID != nil && a.PatientID != *f.PatientID {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		out = append(out, a)
	}
	return page(out, f.Limit, f.Offset), nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
