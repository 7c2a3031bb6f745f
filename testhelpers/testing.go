// Package testhelpers sets up a real Postgres database for integration tests.
// Tests using it are skipped unless TEST_DATABASE_URL is set.
package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and
// truncates all tables when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, connString, 4, nil)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.EnsureSchema(ctx, pool, nil); err != nil {
		pool.Close()
		t.Fatalf("Failed to apply schema: %v", err)
	}

	db := &TestDB{Pool: pool}
	db.Cleanup = func() {
		_, _ = pool.Exec(context.Background(), "TRUNCATE contacts, deals, activities, appointments")
		pool.Close()
	}
	t.Cleanup(db.Cleanup)

	db.truncate(t)
	return db
}

func (db *TestDB) truncate(t *testing.T) {
	t.Helper()
	if _, err := db.Pool.Exec(context.Background(), "TRUNCATE contacts, deals, activities, appointments"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedContact inserts a contact for tenantID and returns its id
func SeedContact(t *testing.T, db *TestDB, tenantID uuid.UUID, email string) uuid.UUID {
	t.Helper()

	contactID := uuid.New()
	query := `
		INSERT INTO contacts (id, tenant_id, first_name, last_name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, contactID, tenantID, "Test", "Contact", email)
	if err != nil {
		t.Fatalf("Failed to seed contact: %v", err)
	}

	return contactID
}

// CountRows counts a tenant's rows in table
func CountRows(t *testing.T, db *TestDB, table string, tenantID uuid.UUID) int {
	t.Helper()

	var n int
	// table names come from test code only
	err := db.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table+" WHERE tenant_id = $1", tenantID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
