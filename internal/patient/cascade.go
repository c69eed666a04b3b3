package patient

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/meditrack/clinic-service/internal/messaging"
)

// visitIDs is the union subquery collecting every medical visit reachable
// from the patient: directly by patient_id, or indirectly through one of
// the patient's appointments. A visit may be linked only through an
// appointment, so neither path alone is sufficient.
const visitIDs = `
	SELECT id FROM clinic.medical_visits WHERE patient_id = $1
	UNION
	SELECT id FROM clinic.medical_visits WHERE appointment_id IN (
		SELECT id FROM clinic.appointments WHERE patient_id = $1
	)
`

// cascadeStep is one delete in the patient cascade. Steps run in order,
// leaves first, so no delete ever targets a table that still has a live
// foreign key into a not-yet-deleted row.
type cascadeStep struct {
	table string
	query string
}

// cascadeSteps is the explicit dependency walk for the patient aggregate.
// Tables reachable by two independent paths (pregnancy_followups via visit
// and via pregnancy, medical_visits via patient and via appointment) union
// their id sets per step so every row goes exactly once. Adding a dependent
// table means adding a step here.
var cascadeSteps = []cascadeStep{
	{"diagnoses", `DELETE FROM clinic.diagnoses WHERE visit_id IN (` + visitIDs + `)`},
	{"prescriptions", `DELETE FROM clinic.prescriptions WHERE visit_id IN (` + visitIDs + `)`},
	{"pregnancy_followups (via visit)", `DELETE FROM clinic.pregnancy_followups WHERE visit_id IN (` + visitIDs + `)`},
	{"pregnancy_followups (via pregnancy)", `
		DELETE FROM clinic.pregnancy_followups WHERE pregnancy_id IN (
			SELECT id FROM clinic.pregnancy_records WHERE patient_id = $1
		)`},
	{"invoice_items", `
		DELETE FROM clinic.invoice_items WHERE invoice_id IN (
			SELECT id FROM clinic.invoices WHERE patient_id = $1
		)`},
	{"payments", `
		DELETE FROM clinic.payments WHERE invoice_id IN (
			SELECT id FROM clinic.invoices WHERE patient_id = $1
		)`},
	{"invoices", `DELETE FROM clinic.invoices WHERE patient_id = $1`},
	{"medical_visits", `DELETE FROM clinic.medical_visits WHERE id IN (` + visitIDs + `)`},
	{"appointments", `DELETE FROM clinic.appointments WHERE patient_id = $1`},
	{"pregnancy_records", `DELETE FROM clinic.pregnancy_records WHERE patient_id = $1`},
	{"medical_histories", `DELETE FROM clinic.medical_histories WHERE patient_id = $1`},
}

// CascadeMetricsRecorder interface for recording cascade deletion metrics
type CascadeMetricsRecorder interface {
	RecordCascadeDelete(ctx context.Context, succeeded bool, durationMs float64)
}

// CascadeService deletes a patient and the entire dependent record forest
// in one transaction.
type CascadeService struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
	metrics   CascadeMetricsRecorder
}

// NewCascadeService creates a new cascade deletion service. A nil metrics
// recorder disables recording.
func NewCascadeService(db *sql.DB, publisher messaging.PublisherInterface, metrics CascadeMetricsRecorder) *CascadeService {
	return &CascadeService{db: db, publisher: publisher, metrics: metrics}
}

// DeletePatientCascade removes the patient and every dependent row across
// all reference paths, atomically. Any step failure rolls the whole
// cascade back and surfaces as ErrCascadeFailed with the root cause
// attached; ErrPatientNotFound when the patient does not exist.
func (s *CascadeService) DeletePatientCascade(ctx context.Context, patientID string) error {
	started := time.Now()

	rowsDeleted, err := s.runCascade(ctx, patientID)

	if s.metrics != nil {
		s.metrics.RecordCascadeDelete(ctx, err == nil, float64(time.Since(started).Milliseconds()))
	}
	if err != nil {
		return err
	}

	event := messaging.PatientDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
		Data: messaging.PatientDeletedData{
			PatientID:   patientID,
			RowsDeleted: rowsDeleted,
			DeletedAt:   time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientDeleted, event); err != nil {
		log.Printf("Warning: failed to publish patient.deleted event: %v", err)
	}

	log.Printf("Cascade deleted patient %s (%d dependent rows)", patientID, rowsDeleted)
	return nil
}

func (s *CascadeService) runCascade(ctx context.Context, patientID string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the patient row first so no concurrent operation can add
	// dependents mid-cascade.
	var lockedID string
	lockQuery := `SELECT id FROM clinic.patients WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, patientID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return 0, ErrPatientNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock patient: %w", err)
	}

	var rowsDeleted int64
	for _, step := range cascadeSteps {
		result, err := tx.ExecContext(ctx, step.query, patientID)
		if err != nil {
			return 0, fmt.Errorf("%w: deleting %s: %v", ErrCascadeFailed, step.table, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: deleting %s: %v", ErrCascadeFailed, step.table, err)
		}
		rowsDeleted += affected
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clinic.patients WHERE id = $1`, patientID); err != nil {
		return 0, fmt.Errorf("%w: deleting patient: %v", ErrCascadeFailed, err)
	}
	rowsDeleted++

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ErrCascadeFailed, err)
	}

	return rowsDeleted, nil
}
