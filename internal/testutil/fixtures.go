package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

// CreateTestDoctor inserts a doctor row and returns its id
func CreateTestDoctor(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO clinic.doctors (id, full_name, specialty, is_active, created_at)
		VALUES ($1, $2, 'General', true, now())
	`, id, name)
	if err != nil {
		t.Fatalf("Failed to create test doctor: %v", err)
	}
	return id
}

// CreateTestPatient inserts a patient row and returns its id
func CreateTestPatient(t *testing.T, db *sql.DB, firstName, lastName string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO clinic.patients (id, first_name, last_name, created_at)
		VALUES ($1, $2, $3, now())
	`, id, firstName, lastName)
	if err != nil {
		t.Fatalf("Failed to create test patient: %v", err)
	}
	return id
}
