package models

import (
	"strings"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var fieldValidator = validator.New()

// Contact is the core CRM record; clinics use it as the patient
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContactInput holds the caller-controlled fields of a new contact.
// It has no tenant field: the store stamps the verified tenant.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
}

// Validate normalizes and checks the input
func (in *ContactInput) Validate() error {
	vErr := &common.ValidationError{}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := common.ValidateRequiredString(in.FirstName, "first_name", 100); err != nil {
		vErr.Add("first_name", err.Error())
	}
	if err := common.ValidateRequiredString(in.LastName, "last_name", 100); err != nil {
		vErr.Add("last_name", err.Error())
	}

	in.Email = common.NormalizeOptional(in.Email)
	if in.Email != nil {
		if err := common.ValidateOptionalString(in.Email, "email", 254); err != nil {
			vErr.Add("email", err.Error())
		} else if err := fieldValidator.Var(*in.Email, "email"); err != nil {
			vErr.Add("email", "email must be a valid email address")
		}
	}

	in.Phone = common.NormalizeOptional(in.Phone)
	if err := common.ValidateOptionalString(in.Phone, "phone", 32); err != nil {
		vErr.Add("phone", err.Error())
	}

	return vErr.OrNil()
}

// ContactFilter narrows a tenant's contact list
type ContactFilter struct {
	Email  *string
	Limit  int
	Offset int
}
