package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"
	"github.com/NishantSagar12345/NextCellCRM/internal/repositories"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Worksheet names in export workbooks
const (
	SheetContacts     = "Contacts"
	SheetDeals        = "Deals"
	SheetActivities   = "Activities"
	SheetAppointments = "Appointments"
)

// ExportService snapshots a tenant's records into an xlsx workbook in object storage
type ExportService interface {
	ExportTenant(ctx context.Context, tenantID uuid.UUID) (*models.ExportResult, error)
	ExportAll(ctx context.Context) ([]*models.ExportResult, error)
}

// ExportOptions configures where and how exports are written
type ExportOptions struct {
	Bucket      string
	URLExpiry   time.Duration
	Concurrency int
}

type exportService struct {
	contactRepo     repositories.ContactRepository
	dealRepo        repositories.DealRepository
	activityRepo    repositories.ActivityRepository
	appointmentRepo repositories.AppointmentRepository
	tenantRepo      repositories.TenantRepository
	storage         StorageService
	opts            ExportOptions
	logger          *zap.Logger
	now             func() time.Time
	newID           func() uuid.UUID
}

func NewExportService(
	contactRepo repositories.ContactRepository,
	dealRepo repositories.DealRepository,
	activityRepo repositories.ActivityRepository,
	appointmentRepo repositories.AppointmentRepository,
	tenantRepo repositories.TenantRepository,
	storage StorageService,
	opts ExportOptions,
	logger *zap.Logger,
) ExportService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &exportService{
		contactRepo:     contactRepo,
		dealRepo:        dealRepo,
		activityRepo:    activityRepo,
		appointmentRepo: appointmentRepo,
		tenantRepo:      tenantRepo,
		storage:         storage,
		opts:            opts,
		logger:          logger,
		now:             time.Now,
		newID:           uuid.New,
	}
}

// ExportObjectKey is the object path of one tenant export taken at t.
// exportID keeps keys unique when two exports share a timestamp.
func ExportObjectKey(tenantID uuid.UUID, t time.Time, exportID uuid.UUID) string {
	return fmt.Sprintf("tenants/%s/exports/%s-%s.xlsx", tenantID.String(), t.UTC().Format("20060102T150405.000000000Z"), exportID.String())
}

func (s *exportService) ExportTenant(ctx context.Context, tenantID uuid.UUID) (*models.ExportResult, error) {
	if tenantID == uuid.Nil {
		return nil, common.ErrTenantRequired
	}

	contacts, err := s.contactRepo.List(ctx, tenantID, models.ContactFilter{})
	if err != nil {
		return nil, err
	}
	deals, err := s.dealRepo.List(ctx, tenantID, models.DealFilter{})
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.List(ctx, tenantID, models.ActivityFilter{})
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.List(ctx, tenantID, models.AppointmentFilter{})
	if err != nil {
		return nil, err
	}

	data, err := BuildWorkbook(contacts, deals, activities, appointments)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	result := &models.ExportResult{
		TenantID:     tenantID,
		Bucket:       s.opts.Bucket,
		ObjectKey:    ExportObjectKey(tenantID, createdAt, s.newID()),
		Contacts:     len(contacts),
		Deals:        len(deals),
		Activities:   len(activities),
		Appointments: len(appointments),
		CreatedAt:    createdAt,
	}

	if err := s.storage.Upload(ctx, result.Bucket, result.ObjectKey, bytes.NewReader(data), int64(len(data)), xlsxContentType); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, result.Bucket, result.ObjectKey, s.opts.URLExpiry)
	if err != nil {
		s.logger.Warn("failed to presign export url", zap.String("object_key", result.ObjectKey), zap.Error(err))
	} else {
		result.URL = url
	}

	s.logger.Info("tenant export written",
		zap.String("tenant_id", tenantID.String()),
		zap.String("object_key", result.ObjectKey),
		zap.Int("contacts", result.Contacts),
		zap.Int("deals", result.Deals),
		zap.Int("activities", result.Activities),
		zap.Int("appointments", result.Appointments),
	)
	return result, nil
}

// ExportAll exports every known tenant with bounded concurrency. A failing
// tenant does not stop the others; all failures are joined into the error.
func (s *exportService) ExportAll(ctx context.Context) ([]*models.ExportResult, error) {
	tenantIDs, err := s.tenantRepo.ListTenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	semaphore := make(chan struct{}, s.opts.Concurrency)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]*models.ExportResult, 0, len(tenantIDs))
		errs    []error
	)

	for _, tenantID := range tenantIDs {
		wg.Add(1)
		go func(tenantID uuid.UUID) {
			defer wg.Done()
			result, err := s.exportWithSlot(ctx, semaphore, tenantID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("tenant %s: %w", tenantID, err))
				return
			}
			results = append(results, result)
		}(tenantID)
	}

	wg.Wait()
	return results, errors.Join(errs...)
}

// exportWithSlot waits for a free slot and reports ctx.Err() for a tenant
// that was never started because ctx ended first.
func (s *exportService) exportWithSlot(ctx context.Context, slots chan struct{}, tenantID uuid.UUID) (*models.ExportResult, error) {
	select {
	case slots <- struct{}{}: // Acquire
		defer func() { <-slots }() // Release
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ExportTenant(ctx, tenantID)
}

// BuildWorkbook renders one worksheet per entity with a bold header row
func BuildWorkbook(contacts []*models.Contact, deals []*models.Deal, activities []*models.Activity, appointments []*models.Appointment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetContacts); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetDeals, SheetActivities, SheetAppointments} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	contactRows := make([][]interface{}, 0, len(contacts))
	for _, c := range contacts {
		contactRows = append(contactRows, []interface{}{
			c.ID.String(), c.FirstName, c.LastName, common.SafeString(c.Email), common.SafeString(c.Phone), formatTime(c.CreatedAt),
		})
	}
	dealRows := make([][]interface{}, 0, len(deals))
	for _, d := range deals {
		contactID := ""
		if d.ContactID != nil {
			contactID = d.ContactID.String()
		}
		dealRows = append(dealRows, []interface{}{
			d.ID.String(), d.Title, d.Amount, common.SafeString(d.Stage), contactID, formatTime(d.CreatedAt),
		})
	}
	activityRows := make([][]interface{}, 0, len(activities))
	for _, a := range activities {
		activityRows = append(activityRows, []interface{}{
			a.ID.String(), a.ActivityType, common.SafeString(a.Description), formatTime(a.CreatedAt),
		})
	}
	appointmentRows := make([][]interface{}, 0, len(appointments))
	for _, a := range appointments {
		appointmentRows = append(appointmentRows, []interface{}{
			a.ID.String(), a.PatientID.String(), a.PractitionerName, a.TreatmentType, formatTime(a.AppointmentTime), a.Status, formatTime(a.CreatedAt),
		})
	}

	sheets := []struct {
		name    string
		headers []interface{}
		rows    [][]interface{}
	}{
		{SheetContacts, []interface{}{"ID", "First Name", "Last Name", "Email", "Phone", "Created At"}, contactRows},
		{SheetDeals, []interface{}{"ID", "Title", "Amount", "Stage", "Contact ID", "Created At"}, dealRows},
		{SheetActivities, []interface{}{"ID", "Activity Type", "Description", "Created At"}, activityRows},
		{SheetAppointments, []interface{}{"ID", "Patient ID", "Practitioner", "Treatment Type", "Appointment Time", "Status", "Created At"}, appointmentRows},
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows, headerStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, headers []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i+2, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
