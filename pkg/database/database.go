package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/NishantSagar12345/NextCellCRM/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// Execer is the subset of a pool needed to apply the schema
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewPool opens a pgx pool and verifies connectivity
func NewPool(ctx context.Context, dsn string, maxConns int32, log *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.OrNop(log).Info("database connected", zap.Int32("max_conns", config.MaxConns))
	return pool, nil
}

// Schema returns the DDL applied by EnsureSchema
func Schema() string {
	return schemaSQL
}

// EnsureSchema creates the CRM tables and indexes if they do not exist
func EnsureSchema(ctx context.Context, db Execer, log *zap.Logger) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.OrNop(log).Info("database schema ensured")
	return nil
}
