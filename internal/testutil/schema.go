package testutil

import (
	"database/sql"
	"fmt"
)

// schemaStatements creates the clinic schema and every table the service
// touches. All statements are idempotent so EnsureSchema can run before
// each test binary without coordination. Foreign keys are plain REFERENCES
// with no ON DELETE CASCADE: dependent-row removal is the application's
// job, and an uncovered reference path should fail loudly as a constraint
// violation rather than silently cascade.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS clinic`,

	`CREATE TABLE IF NOT EXISTS clinic.doctors (
		id UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		specialty TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.patients (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		date_of_birth DATE,
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.working_schedules (
		id UUID PRIMARY KEY,
		doctor_id UUID NOT NULL REFERENCES clinic.doctors(id),
		day_of_week INT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		slot_duration_minutes INT NOT NULL CHECK (slot_duration_minutes > 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id),
		doctor_id UUID NOT NULL REFERENCES clinic.doctors(id),
		appointment_date DATE NOT NULL,
		appointment_time VARCHAR(5) NOT NULL,
		duration_minutes INT NOT NULL CHECK (duration_minutes > 0),
		status VARCHAR(20) NOT NULL,
		reason TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_date
		ON clinic.appointments (doctor_id, appointment_date)`,

	`CREATE TABLE IF NOT EXISTS clinic.invoices (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id),
		total_amount NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0),
		paid_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		remaining_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		payment_status VARCHAR(10) NOT NULL,
		issued_date DATE NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.invoice_items (
		id UUID PRIMARY KEY,
		invoice_id UUID NOT NULL REFERENCES clinic.invoices(id),
		description TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(12,2) NOT NULL,
		line_total NUMERIC(12,2) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.payments (
		id UUID PRIMARY KEY,
		invoice_id UUID NOT NULL REFERENCES clinic.invoices(id),
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		payment_method VARCHAR(10) NOT NULL,
		is_refunded BOOLEAN NOT NULL DEFAULT FALSE,
		refunded_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.medical_histories (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id),
		condition TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.medical_visits (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id),
		doctor_id UUID NOT NULL REFERENCES clinic.doctors(id),
		appointment_id UUID UNIQUE REFERENCES clinic.appointments(id),
		visit_date DATE NOT NULL,
		symptoms TEXT NOT NULL DEFAULT '',
		examination_notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.diagnoses (
		id UUID PRIMARY KEY,
		visit_id UUID NOT NULL REFERENCES clinic.medical_visits(id),
		code TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.prescriptions (
		id UUID PRIMARY KEY,
		visit_id UUID NOT NULL REFERENCES clinic.medical_visits(id),
		medication TEXT NOT NULL,
		dosage TEXT NOT NULL DEFAULT '',
		duration_days INT NOT NULL DEFAULT 0,
		instructions TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.pregnancy_records (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES clinic.patients(id),
		start_date DATE NOT NULL,
		expected_due_date DATE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS clinic.pregnancy_followups (
		id UUID PRIMARY KEY,
		visit_id UUID REFERENCES clinic.medical_visits(id),
		pregnancy_id UUID REFERENCES clinic.pregnancy_records(id),
		gestational_week INT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (visit_id IS NOT NULL OR pregnancy_id IS NOT NULL)
	)`,
}

// EnsureSchema creates the clinic schema and tables if they do not exist
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
