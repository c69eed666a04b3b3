package patient

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/meditrack/clinic-service/internal/messaging"
	"github.com/meditrack/clinic-service/internal/testutil"
)

// seedPatientForest builds the full dependent aggregate for one patient:
// an appointment, a visit linked only through that appointment, a second
// visit linked directly, diagnoses and prescriptions under both visits, a
// pregnancy with followups reaching it through both paths, an invoice with
// items and payments, and a history entry.
func seedPatientForest(t *testing.T, db *sql.DB, patientID, doctorID string) {
	t.Helper()

	exec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
	}

	appointmentID := uuid.New().String()
	exec(`INSERT INTO clinic.appointments (id, patient_id, doctor_id, appointment_date, appointment_time, duration_minutes, status, created_at)
		VALUES ($1, $2, $3, '2025-06-02', '10:00', 30, 'COMPLETED', now())`, appointmentID, patientID, doctorID)

	// Visit reachable only through the appointment path.
	visitViaAppt := uuid.New().String()
	exec(`INSERT INTO clinic.medical_visits (id, patient_id, doctor_id, appointment_id, visit_date, created_at)
		VALUES ($1, $2, $3, $4, '2025-06-02', now())`, visitViaAppt, patientID, doctorID, appointmentID)

	// Visit linked directly, no appointment.
	visitDirect := uuid.New().String()
	exec(`INSERT INTO clinic.medical_visits (id, patient_id, doctor_id, visit_date, created_at)
		VALUES ($1, $2, $3, '2025-06-09', now())`, visitDirect, patientID, doctorID)

	exec(`INSERT INTO clinic.diagnoses (id, visit_id, name, created_at) VALUES ($1, $2, 'Hypertension', now())`, uuid.New().String(), visitViaAppt)
	exec(`INSERT INTO clinic.diagnoses (id, visit_id, name, created_at) VALUES ($1, $2, 'Anemia', now())`, uuid.New().String(), visitDirect)
	exec(`INSERT INTO clinic.prescriptions (id, visit_id, medication, created_at) VALUES ($1, $2, 'Amlodipine', now())`, uuid.New().String(), visitViaAppt)

	pregnancyID := uuid.New().String()
	exec(`INSERT INTO clinic.pregnancy_records (id, patient_id, start_date, created_at)
		VALUES ($1, $2, '2025-01-15', now())`, pregnancyID, patientID)

	// Followup through the visit path only.
	exec(`INSERT INTO clinic.pregnancy_followups (id, visit_id, gestational_week, created_at)
		VALUES ($1, $2, 12, now())`, uuid.New().String(), visitDirect)
	// Followup through the pregnancy path only.
	exec(`INSERT INTO clinic.pregnancy_followups (id, pregnancy_id, gestational_week, created_at)
		VALUES ($1, $2, 16, now())`, uuid.New().String(), pregnancyID)

	invoiceID := uuid.New().String()
	exec(`INSERT INTO clinic.invoices (id, patient_id, total_amount, paid_amount, remaining_amount, payment_status, issued_date, created_at)
		VALUES ($1, $2, 912, 150, 762, 'PARTIAL', '2025-06-02', now())`, invoiceID, patientID)
	exec(`INSERT INTO clinic.invoice_items (id, invoice_id, description, quantity, unit_price, line_total)
		VALUES ($1, $2, 'Consultation', 1, 912, 912)`, uuid.New().String(), invoiceID)
	exec(`INSERT INTO clinic.payments (id, invoice_id, amount, payment_method, is_refunded, created_at)
		VALUES ($1, $2, 150, 'CASH', false, now())`, uuid.New().String(), invoiceID)

	exec(`INSERT INTO clinic.medical_histories (id, patient_id, condition, recorded_at, created_at)
		VALUES ($1, $2, 'Asthma', now(), now())`, uuid.New().String(), patientID)
}

func countRows(t *testing.T, db *sql.DB, table, column, id string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM clinic.`+table+` WHERE `+column+` = $1`, id).Scan(&count); err != nil {
		t.Fatalf("Count on %s failed: %v", table, err)
	}
	return count
}

func TestDeletePatientCascade_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	cascade := NewCascadeService(db, publisher, nil)

	doctorID := testutil.CreateTestDoctor(t, db, "Dr. Imani")
	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")
	seedPatientForest(t, db, patientID, doctorID)

	// Control patient with their own records, untouched by the cascade.
	otherID := testutil.CreateTestPatient(t, db, "Bisi", "Adeyemi")
	seedPatientForest(t, db, otherID, doctorID)

	if err := cascade.DeletePatientCascade(context.Background(), patientID); err != nil {
		t.Fatalf("Cascade failed: %v", err)
	}

	for _, check := range []struct{ table, column string }{
		{"patients", "id"},
		{"appointments", "patient_id"},
		{"medical_visits", "patient_id"},
		{"invoices", "patient_id"},
		{"pregnancy_records", "patient_id"},
		{"medical_histories", "patient_id"},
	} {
		if n := countRows(t, db, check.table, check.column, patientID); n != 0 {
			t.Errorf("Expected 0 rows in %s for deleted patient, got %d", check.table, n)
		}
	}

	// Orphan check: nothing may reference the deleted forest.
	var orphans int
	if err := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM clinic.diagnoses d LEFT JOIN clinic.medical_visits v ON d.visit_id = v.id WHERE v.id IS NULL) +
			(SELECT COUNT(*) FROM clinic.prescriptions p LEFT JOIN clinic.medical_visits v ON p.visit_id = v.id WHERE v.id IS NULL) +
			(SELECT COUNT(*) FROM clinic.invoice_items i LEFT JOIN clinic.invoices inv ON i.invoice_id = inv.id WHERE inv.id IS NULL) +
			(SELECT COUNT(*) FROM clinic.payments p LEFT JOIN clinic.invoices inv ON p.invoice_id = inv.id WHERE inv.id IS NULL)
	`).Scan(&orphans); err != nil {
		t.Fatalf("Orphan check failed: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Expected no orphaned dependent rows, got %d", orphans)
	}

	// The control patient's forest is intact.
	if n := countRows(t, db, "medical_visits", "patient_id", otherID); n != 2 {
		t.Errorf("Expected control patient's 2 visits to survive, got %d", n)
	}
	if n := countRows(t, db, "invoices", "patient_id", otherID); n != 1 {
		t.Errorf("Expected control patient's invoice to survive, got %d", n)
	}

	publisher.AssertEventPublished(t, messaging.EventPatientDeleted)
}

func TestDeletePatientCascade_Integration_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	cascade := NewCascadeService(db, testutil.NewMockPublisher(), nil)

	err := cascade.DeletePatientCascade(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}

func TestDeletePatientCascade_Integration_NoDependents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	cascade := NewCascadeService(db, publisher, nil)

	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")

	if err := cascade.DeletePatientCascade(context.Background(), patientID); err != nil {
		t.Fatalf("Cascade of bare patient failed: %v", err)
	}
	if n := countRows(t, db, "patients", "id", patientID); n != 0 {
		t.Errorf("Expected patient deleted, got %d rows", n)
	}
}
