package repositories

import (
	"context"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contactExistsSQL = `SELECT EXISTS(SELECT 1 FROM contacts WHERE tenant_id = $1 AND id = $2)`

// Linkage decides what happens when a record references a contact that
// does not exist in the same tenant.
type Linkage struct {
	Policy string
	Logger *zap.Logger
}

// NewLinkage builds a Linkage; an empty policy falls back to warn
func NewLinkage(policy string, logger *zap.Logger) Linkage {
	if policy == "" {
		policy = config.LinkagePolicyWarn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Linkage{Policy: policy, Logger: logger}
}

func (l Linkage) enabled() bool {
	return l.Policy == config.LinkagePolicyWarn || l.Policy == config.LinkagePolicyStrict
}

// insertWithLinkage runs insert directly when the policy is off or there is
// no reference. Otherwise the existence check and the insert share one
// transaction, so a strict rejection never leaves a row behind.
func (l Linkage) insertWithLinkage(ctx context.Context, db Database, tenantID uuid.UUID, ref *uuid.UUID, field, entity string, insert func(q queryRower) error) error {
	if !l.enabled() || ref == nil {
		return insert(db)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return mapStoreError("begin "+entity, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, contactExistsSQL, tenantID, *ref).Scan(&exists); err != nil {
		return mapStoreError("check "+field, err)
	}

	if !exists {
		if l.Policy == config.LinkagePolicyStrict {
			return common.NewValidationError(field, field+" does not reference a contact of this tenant")
		}
		l.Logger.Warn("unverified contact reference",
			zap.String("entity", entity),
			zap.String("field", field),
			zap.String("tenant_id", tenantID.String()),
			zap.String("reference", ref.String()),
		)
	}

	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError("commit "+entity, err)
	}
	return nil
}
