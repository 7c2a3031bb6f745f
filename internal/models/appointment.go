package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/google/uuid"
)

const (
	DefaultTreatmentType     = "Consultation"
	DefaultAppointmentStatus = "Scheduled"
)

// Appointment is a clinic booking; PatientID references a Contact of the same tenant
type Appointment struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TenantID         uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PatientID        uuid.UUID `json:"patient_id" db:"patient_id"`
	PractitionerName string    `json:"practitioner_name" db:"practitioner_name"`
	TreatmentType    string    `json:"treatment_type" db:"treatment_type"`
	AppointmentTime  time.Time `json:"appointment_time" db:"appointment_time"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type AppointmentInput struct {
	PatientID        uuid.UUID
	PractitionerName string
	TreatmentType    string
	AppointmentTime  time.Time
	Status           string
}

// ApplyDefaults fills the optional fields left empty by the caller
func (in *AppointmentInput) ApplyDefaults() {
	if strings.TrimSpace(in.TreatmentType) == "" {
		in.TreatmentType = DefaultTreatmentType
	}
	if strings.TrimSpace(in.Status) == "" {
		in.Status = DefaultAppointmentStatus
	}
}

func (in *AppointmentInput) Validate() error {
	vErr := &common.ValidationError{}

	if in.PatientID == uuid.Nil {
		vErr.Add("patient_id", "patient_id is required")
	}
	in.PractitionerName = strings.TrimSpace(in.PractitionerName)
	if err := common.ValidateRequiredString(in.PractitionerName, "practitioner_name", 200); err != nil {
		vErr.Add("practitioner_name", err.Error())
	}
	in.TreatmentType = strings.TrimSpace(in.TreatmentType)
	if utf8.RuneCountInString(in.TreatmentType) > 100 {
		vErr.Add("treatment_type", "treatment_type cannot exceed 100 characters")
	}
	in.Status = strings.TrimSpace(in.Status)
	if utf8.RuneCountInString(in.Status) > 50 {
		vErr.Add("status", "status cannot exceed 50 characters")
	}
	if in.AppointmentTime.IsZero() {
		vErr.Add("appointment_time", "appointment_time is required")
	}

	return vErr.OrNil()
}

type AppointmentFilter struct {
	PatientID *uuid.UUID
	Status    *string
	Limit     int
	Offset    int
}
