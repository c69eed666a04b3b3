package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/clinic-service/internal/messaging"
	"github.com/meditrack/clinic-service/internal/pagination"
)

const appointmentColumns = "id, patient_id, doctor_id, appointment_date, appointment_time, duration_minutes, status, reason, notes, created_at, updated_at"

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{db: db, publisher: publisher}
}

// Book inserts a new BOOKED appointment. The availability predicate runs
// against the doctor's day inside the same serializable transaction as the
// insert, so a lost race surfaces as ErrSlotConflict or a serialization
// failure rather than a double booking.
func (r *Repository) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := listDayTx(ctx, tx, req.DoctorID, req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if !IsSlotFree(req.AppointmentDate, req.AppointmentTime, req.DurationMinutes, existing, "") {
		return nil, ErrSlotConflict
	}

	appointmentID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.appointments
		(id, patient_id, doctor_id, appointment_date, appointment_time, duration_minutes, status, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + appointmentColumns

	a, err := scanAppointment(tx.QueryRowContext(ctx, query,
		appointmentID,
		req.PatientID,
		req.DoctorID,
		req.AppointmentDate.Format(DateLayout),
		req.AppointmentTime,
		req.DurationMinutes,
		StatusBooked,
		req.Reason,
		req.Notes,
		createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	event := messaging.AppointmentBookedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentBooked),
		Data: messaging.AppointmentBookedData{
			AppointmentID:   a.ID,
			PatientID:       a.PatientID,
			DoctorID:        a.DoctorID,
			AppointmentDate: a.AppointmentDate.Format(DateLayout),
			AppointmentTime: a.AppointmentTime,
			DurationMinutes: a.DurationMinutes,
			BookedAt:        a.CreatedAt,
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventAppointmentBooked, event); err != nil {
		log.Printf("Warning: failed to publish appointment.booked event: %v", err)
	}

	return a, nil
}

// Reschedule moves an appointment to a new date/time/duration, re-checking
// availability with the appointment itself excluded from the blocked set.
func (r *Repository) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	existing, err := listDayTx(ctx, tx, current.DoctorID, req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if !IsSlotFree(req.AppointmentDate, req.AppointmentTime, req.DurationMinutes, existing, id) {
		return nil, ErrSlotConflict
	}

	query := `
		UPDATE clinic.appointments
		SET appointment_date = $1, appointment_time = $2, duration_minutes = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + appointmentColumns

	a, err := scanAppointment(tx.QueryRowContext(ctx, query,
		req.AppointmentDate.Format(DateLayout),
		req.AppointmentTime,
		req.DurationMinutes,
		time.Now().UTC(),
		id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reschedule: %w", err)
	}

	event := messaging.AppointmentRescheduledEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentRescheduled),
		Data: messaging.AppointmentRescheduledData{
			AppointmentID:   a.ID,
			DoctorID:        a.DoctorID,
			OldDate:         current.AppointmentDate.Format(DateLayout),
			OldTime:         current.AppointmentTime,
			NewDate:         a.AppointmentDate.Format(DateLayout),
			NewTime:         a.AppointmentTime,
			DurationMinutes: a.DurationMinutes,
			ChangedAt:       time.Now().UTC(),
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventAppointmentRescheduled, event); err != nil {
		log.Printf("Warning: failed to publish appointment.rescheduled event: %v", err)
	}

	return a, nil
}

// UpdateStatus applies a lifecycle transition. Terminal states reject any
// further change.
func (r *Repository) UpdateStatus(ctx context.Context, id string, newStatus Status) (*Appointment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, ErrInvalidTransition
	}
	if current.Status == newStatus {
		return current, nil
	}

	query := `
		UPDATE clinic.appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + appointmentColumns

	a, err := scanAppointment(tx.QueryRowContext(ctx, query, newStatus, time.Now().UTC(), id))
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}

	event := messaging.AppointmentStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
		Data: messaging.AppointmentStatusChangedData{
			AppointmentID: a.ID,
			DoctorID:      a.DoctorID,
			OldStatus:     string(current.Status),
			NewStatus:     string(a.Status),
			ChangedAt:     time.Now().UTC(),
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventAppointmentStatusChanged, event); err != nil {
		log.Printf("Warning: failed to publish appointment.status_changed event: %v", err)
	}

	return a, nil
}

func (r *Repository) DeleteAppointment(ctx context.Context, id string) error {
	query := `
		DELETE FROM clinic.appointments
		WHERE id = $1
		RETURNING patient_id, doctor_id
	`

	var patientID, doctorID string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&patientID, &doctorID)
	if err == sql.ErrNoRows {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	event := messaging.AppointmentDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentDeleted),
		Data: messaging.AppointmentDeletedData{
			AppointmentID: id,
			PatientID:     patientID,
			DoctorID:      doctorID,
			DeletedAt:     time.Now().UTC(),
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventAppointmentDeleted, event); err != nil {
		log.Printf("Warning: failed to publish appointment.deleted event: %v", err)
	}

	return nil
}

func (r *Repository) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM clinic.appointments
		WHERE id = $1
	`

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}
	return a, nil
}

func (r *Repository) ListByDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM clinic.appointments
		WHERE doctor_id = $1 AND appointment_date = $2
		ORDER BY appointment_time
	`

	rows, err := r.db.QueryContext(ctx, query, doctorID, date.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *Repository) ListByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Appointment, *pagination.Meta, error) {
	params.Validate()

	var total int
	countQuery := `SELECT COUNT(*) FROM clinic.appointments WHERE patient_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, patientID).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := `
		SELECT ` + appointmentColumns + `
		FROM clinic.appointments
		WHERE patient_id = $1
		ORDER BY appointment_date DESC, appointment_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, patientID, params.Limit, params.Offset())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments, err := collectAppointments(rows)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.CalculateMeta(params, total)
	return appointments, &meta, nil
}

func listDayTx(ctx context.Context, tx *sql.Tx, doctorID string, date time.Time) ([]Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM clinic.appointments
		WHERE doctor_id = $1 AND appointment_date = $2
		ORDER BY appointment_time
	`

	rows, err := tx.QueryContext(ctx, query, doctorID, date.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query day appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func getTx(ctx context.Context, tx *sql.Tx, id string) (*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM clinic.appointments
		WHERE id = $1
	`

	a, err := scanAppointment(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}
	return a, nil
}

func getForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM clinic.appointments
		WHERE id = $1
		FOR UPDATE
	`

	a, err := scanAppointment(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock appointment: %w", err)
	}
	return a, nil
}

func collectAppointments(rows *sql.Rows) ([]Appointment, error) {
	var appointments []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}
	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*Appointment, error) {
	var a Appointment
	var reason, notes sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.DurationMinutes,
		&a.Status,
		&reason,
		&notes,
		&a.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		a.Reason = reason.String
	}
	if notes.Valid {
		a.Notes = notes.String
	}
	if updatedAt.Valid {
		a.UpdatedAt = &updatedAt.Time
	}
	return &a, nil
}
