package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of *pgxpool.Pool used by the repositories.
// pgxmock.PgxPoolIface satisfies it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// queryRower is implemented by both Database and pgx.Tx
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql renders $n placeholders for postgres
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tenantSelect starts a list query that is always scoped to one tenant.
// The tenant predicate is built with Where(string) because squirrel expands
// array values such as uuid.UUID into IN lists when passed through sq.Eq.
func tenantSelect(table string, tenantID any, columns ...string) sq.SelectBuilder {
	return psql.Select(columns...).
		From(table).
		Where("tenant_id = ?", tenantID)
}

// orderAndPage applies insertion ordering and optional pagination; 0 means unbounded
func orderAndPage(q sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	q = q.OrderBy("created_at ASC", "id ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}

// mapStoreError converts constraint violations into validation errors and
// wraps everything else with the failing operation.
func mapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		if field == "" {
			field = "record"
		}
		return common.NewValidationError(field, "violates a data constraint")
	}

	return fmt.Errorf("%s: %w", op, err)
}
