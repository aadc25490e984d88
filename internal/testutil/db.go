// Package testutil provides the PostgreSQL fixture of the integration tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/mishasvintus/team_roster_admin/internal/repository"
)

// SetupTestDB connects to the test database, applies migrations and empties
// every table. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		env("TEST_DB_HOST", "localhost"),
		env("TEST_DB_PORT", "5432"),
		env("TEST_DB_USER", "roster_user"),
		env("TEST_DB_PASSWORD", "roster_password"),
		env("TEST_DB_NAME", "roster_test"),
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := repository.Migrate(context.Background(), db, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := CleanupTestDB(db); err != nil {
		t.Fatalf("failed to cleanup test database: %v", err)
	}
	return db
}

// CleanupTestDB truncates all tables to clean up test data.
func CleanupTestDB(db *sql.DB) error {
	_, err := db.Exec(`TRUNCATE TABLE team_members, role_permissions, roles, permissions RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
