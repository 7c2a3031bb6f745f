package models

import (
	"strings"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/google/uuid"
)

// Activity is a free-form interaction log entry (note, task, call)
type Activity struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Description  *string   `json:"description" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ActivityInput struct {
	ActivityType string
	Description  *string
}

func (in *ActivityInput) Validate() error {
	vErr := &common.ValidationError{}

	in.ActivityType = strings.TrimSpace(in.ActivityType)
	if err := common.ValidateRequiredString(in.ActivityType, "activity_type", 50); err != nil {
		vErr.Add("activity_type", err.Error())
	}
	in.Description = common.NormalizeOptional(in.Description)
	if err := common.ValidateOptionalString(in.Description, "description", 10000); err != nil {
		vErr.Add("description", err.Error())
	}

	return vErr.OrNil()
}

type ActivityFilter struct {
	ActivityType *string
	Limit        int
	Offset       int
}
