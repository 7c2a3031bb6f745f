package models

import (
	"strings"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/google/uuid"
)

// Deal represents a sales opportunity, optionally linked to a contact
type Deal struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Title     string     `json:"title" db:"title"`
	Amount    float64    `json:"amount" db:"amount"`
	Stage     *string    `json:"stage" db:"stage"`
	ContactID *uuid.UUID `json:"contact_id" db:"contact_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type DealInput struct {
	Title     string
	Amount    float64
	Stage     *string
	ContactID *uuid.UUID
}

// MaxDealAmount bounds Amount to keep it representable in NUMERIC(14,2)
const MaxDealAmount = 999999999999.99

func (in *DealInput) Validate() error {
	vErr := &common.ValidationError{}

	in.Title = strings.TrimSpace(in.Title)
	if err := common.ValidateRequiredString(in.Title, "title", 200); err != nil {
		vErr.Add("title", err.Error())
	}
	if in.Amount < 0 {
		vErr.Add("amount", "amount cannot be negative")
	} else if in.Amount > MaxDealAmount {
		vErr.Add("amount", "amount is too large")
	}

	in.Stage = common.NormalizeOptional(in.Stage)
	if err := common.ValidateOptionalString(in.Stage, "stage", 50); err != nil {
		vErr.Add("stage", err.Error())
	}
	if in.ContactID != nil && *in.ContactID == uuid.Nil {
		vErr.Add("contact_id", "contact_id cannot be the nil UUID")
	}

	return vErr.OrNil()
}

type DealFilter struct {
	Stage     *string
	ContactID *uuid.UUID
	Limit     int
	Offset    int
}
