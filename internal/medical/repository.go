package medical

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const visitColumns = "id, patient_id, doctor_id, appointment_id, visit_date, symptoms, examination_notes, created_at, updated_at"
const historyColumns = "id, patient_id, condition, notes, recorded_at, created_at, updated_at"
const pregnancyColumns = "id, patient_id, start_date, expected_due_date, notes, created_at, updated_at"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateVisit records a consultation. The unique constraint on
// appointment_id enforces at most one visit per appointment.
func (r *Repository) CreateVisit(ctx context.Context, req CreateVisitRequest) (*MedicalVisit, error) {
	visitID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.medical_visits
		(id, patient_id, doctor_id, appointment_id, visit_date, symptoms, examination_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + visitColumns

	v, err := scanVisit(r.db.QueryRowContext(ctx, query,
		visitID,
		req.PatientID,
		req.DoctorID,
		req.AppointmentID,
		req.VisitDate,
		req.Symptoms,
		req.ExaminationNotes,
		createdAt,
	))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return nil, ErrVisitExists
			}
		}
		return nil, fmt.Errorf("failed to insert medical visit: %w", err)
	}
	return v, nil
}

func (r *Repository) GetVisit(ctx context.Context, id string) (*MedicalVisit, error) {
	query := `SELECT ` + visitColumns + ` FROM clinic.medical_visits WHERE id = $1`

	v, err := scanVisit(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query medical visit: %w", err)
	}
	return v, nil
}

func (r *Repository) ListVisitsByPatient(ctx context.Context, patientID string) ([]MedicalVisit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM clinic.medical_visits
		WHERE patient_id = $1
		ORDER BY visit_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical visits: %w", err)
	}
	defer rows.Close()

	var visits []MedicalVisit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medical visit: %w", err)
		}
		visits = append(visits, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medical visits: %w", err)
	}
	return visits, nil
}

func (r *Repository) CreateHistory(ctx context.Context, req CreateHistoryRequest) (*MedicalHistory, error) {
	historyID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.medical_histories
		(id, patient_id, condition, notes, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + historyColumns

	var h MedicalHistory
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, historyID, req.PatientID, req.Condition, req.Notes, req.RecordedAt, createdAt).
		Scan(&h.ID, &h.PatientID, &h.Condition, &h.Notes, &h.RecordedAt, &h.CreatedAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert medical history: %w", err)
	}
	if updatedAt.Valid {
		h.UpdatedAt = &updatedAt.Time
	}
	return &h, nil
}

func (r *Repository) ListHistoriesByPatient(ctx context.Context, patientID string) ([]MedicalHistory, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM clinic.medical_histories
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical histories: %w", err)
	}
	defer rows.Close()

	var histories []MedicalHistory
	for rows.Next() {
		var h MedicalHistory
		var updatedAt sql.NullTime
		if err := rows.Scan(&h.ID, &h.PatientID, &h.Condition, &h.Notes, &h.RecordedAt, &h.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medical history: %w", err)
		}
		if updatedAt.Valid {
			h.UpdatedAt = &updatedAt.Time
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medical histories: %w", err)
	}
	return histories, nil
}

func (r *Repository) CreateDiagnosis(ctx context.Context, req CreateDiagnosisRequest) (*Diagnosis, error) {
	diagnosisID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.diagnoses
		(id, visit_id, code, name, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, visit_id, code, name, notes, created_at
	`

	var d Diagnosis
	err := r.db.QueryRowContext(ctx, query, diagnosisID, req.VisitID, req.Code, req.Name, req.Notes, createdAt).
		Scan(&d.ID, &d.VisitID, &d.Code, &d.Name, &d.Notes, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert diagnosis: %w", err)
	}
	return &d, nil
}

func (r *Repository) ListDiagnosesByVisit(ctx context.Context, visitID string) ([]Diagnosis, error) {
	query := `
		SELECT id, visit_id, code, name, notes, created_at
		FROM clinic.diagnoses
		WHERE visit_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, visitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnoses: %w", err)
	}
	defer rows.Close()

	var diagnoses []Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.ID, &d.VisitID, &d.Code, &d.Name, &d.Notes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diagnosis: %w", err)
		}
		diagnoses = append(diagnoses, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagnoses: %w", err)
	}
	return diagnoses, nil
}

func (r *Repository) CreatePrescription(ctx context.Context, req CreatePrescriptionRequest) (*Prescription, error) {
	prescriptionID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.prescriptions
		(id, visit_id, medication, dosage, duration_days, instructions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, visit_id, medication, dosage, duration_days, instructions, created_at
	`

	var p Prescription
	err := r.db.QueryRowContext(ctx, query, prescriptionID, req.VisitID, req.Medication, req.Dosage, req.DurationDays, req.Instructions, createdAt).
		Scan(&p.ID, &p.VisitID, &p.Medication, &p.Dosage, &p.DurationDays, &p.Instructions, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert prescription: %w", err)
	}
	return &p, nil
}

func (r *Repository) ListPrescriptionsByVisit(ctx context.Context, visitID string) ([]Prescription, error) {
	query := `
		SELECT id, visit_id, medication, dosage, duration_days, instructions, created_at
		FROM clinic.prescriptions
		WHERE visit_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, visitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.VisitID, &p.Medication, &p.Dosage, &p.DurationDays, &p.Instructions, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *Repository) CreatePregnancy(ctx context.Context, req CreatePregnancyRequest) (*PregnancyRecord, error) {
	pregnancyID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.pregnancy_records
		(id, patient_id, start_date, expected_due_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + pregnancyColumns

	p, err := scanPregnancy(r.db.QueryRowContext(ctx, query, pregnancyID, req.PatientID, req.StartDate, req.ExpectedDueDate, req.Notes, createdAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert pregnancy record: %w", err)
	}
	return p, nil
}

func (r *Repository) ListPregnanciesByPatient(ctx context.Context, patientID string) ([]PregnancyRecord, error) {
	query := `
		SELECT ` + pregnancyColumns + `
		FROM clinic.pregnancy_records
		WHERE patient_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pregnancy records: %w", err)
	}
	defer rows.Close()

	var records []PregnancyRecord
	for rows.Next() {
		p, err := scanPregnancy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pregnancy record: %w", err)
		}
		records = append(records, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pregnancy records: %w", err)
	}
	return records, nil
}

func (r *Repository) CreateFollowup(ctx context.Context, req CreateFollowupRequest) (*PregnancyFollowup, error) {
	followupID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.pregnancy_followups
		(id, visit_id, pregnancy_id, gestational_week, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, visit_id, pregnancy_id, gestational_week, notes, created_at
	`

	var f PregnancyFollowup
	err := r.db.QueryRowContext(ctx, query, followupID, req.VisitID, req.PregnancyID, req.GestationalWeek, req.Notes, createdAt).
		Scan(&f.ID, &f.VisitID, &f.PregnancyID, &f.GestationalWeek, &f.Notes, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pregnancy followup: %w", err)
	}
	return &f, nil
}

func (r *Repository) ListFollowupsByPregnancy(ctx context.Context, pregnancyID string) ([]PregnancyFollowup, error) {
	query := `
		SELECT id, visit_id, pregnancy_id, gestational_week, notes, created_at
		FROM clinic.pregnancy_followups
		WHERE pregnancy_id = $1
		ORDER BY gestational_week
	`

	rows, err := r.db.QueryContext(ctx, query, pregnancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pregnancy followups: %w", err)
	}
	defer rows.Close()

	var followups []PregnancyFollowup
	for rows.Next() {
		var f PregnancyFollowup
		if err := rows.Scan(&f.ID, &f.VisitID, &f.PregnancyID, &f.GestationalWeek, &f.Notes, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pregnancy followup: %w", err)
		}
		followups = append(followups, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pregnancy followups: %w", err)
	}
	return followups, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(row rowScanner) (*MedicalVisit, error) {
	var v MedicalVisit
	var appointmentID sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.PatientID,
		&v.DoctorID,
		&appointmentID,
		&v.VisitDate,
		&v.Symptoms,
		&v.ExaminationNotes,
		&v.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appointmentID.Valid {
		v.AppointmentID = &appointmentID.String
	}
	if updatedAt.Valid {
		v.UpdatedAt = &updatedAt.Time
	}
	return &v, nil
}

func scanPregnancy(row rowScanner) (*PregnancyRecord, error) {
	var p PregnancyRecord
	var dueDate, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.PatientID,
		&p.StartDate,
		&dueDate,
		&p.Notes,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		p.ExpectedDueDate = &dueDate.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return &p, nil
}
