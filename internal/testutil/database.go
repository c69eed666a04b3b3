package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB creates a connection to the test database named by the
// CLINIC_TEST_DB connection string. Tests calling it are skipped when the
// variable is unset, so the unit suite runs without any infrastructure.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("CLINIC_TEST_DB")
	if connStr == "" {
		t.Skip("CLINIC_TEST_DB not set, skipping integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("Failed to bootstrap test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CleanupTestDB truncates all clinic tables so tests start from empty state
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`
		TRUNCATE TABLE
			clinic.diagnoses,
			clinic.prescriptions,
			clinic.pregnancy_followups,
			clinic.pregnancy_records,
			clinic.medical_visits,
			clinic.medical_histories,
			clinic.invoice_items,
			clinic.payments,
			clinic.invoices,
			clinic.appointments,
			clinic.working_schedules,
			clinic.patients,
			clinic.doctors
		CASCADE
	`)
	if err != nil {
		t.Logf("Warning: Failed to clean up clinic tables: %v", err)
	}
}
