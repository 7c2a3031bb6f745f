package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportResult describes a tenant workbook written to object storage
type ExportResult struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	Bucket       string    `json:"bucket"`
	ObjectKey    string    `json:"object_key"`
	URL          string    `json:"url,omitempty"`
	Contacts     int       `json:"contacts"`
	Deals        int       `json:"deals"`
	Activities   int       `json:"activities"`
	Appointments int       `json:"appointments"`
	CreatedAt    time.Time `json:"created_at"`
}
