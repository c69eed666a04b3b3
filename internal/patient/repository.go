package patient

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/clinic-service/internal/messaging"
	"github.com/meditrack/clinic-service/internal/pagination"
)

const patientColumns = "id, first_name, last_name, email, phone_number, date_of_birth, address, created_at, updated_at"

const dateLayout = "2006-01-02"

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{db: db, publisher: publisher}
}

func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	patientID := uuid.New()
	createdAt := time.Now().UTC()

	var dob interface{}
	if req.DateOfBirth != "" {
		dob = req.DateOfBirth
	}

	query := `
		INSERT INTO clinic.patients
		(id, first_name, last_name, email, phone_number, date_of_birth, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + patientColumns

	p, err := scanPatient(r.db.QueryRowContext(ctx, query,
		patientID,
		req.FirstName,
		req.LastName,
		req.Email,
		req.PhoneNumber,
		dob,
		req.Address,
		createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	event := messaging.PatientCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
		Data: messaging.PatientCreatedData{
			PatientID: p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			CreatedAt: p.CreatedAt,
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
		log.Printf("Warning: failed to publish patient.created event: %v", err)
	}

	return p, nil
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM clinic.patients
		WHERE id = $1
	`

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return p, nil
}

func (r *Repository) ListPatients(ctx context.Context, params pagination.Params) ([]Patient, *pagination.Meta, error) {
	params.Validate()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clinic.patients`).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `
		SELECT ` + patientColumns + `
		FROM clinic.patients
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating patients: %w", err)
	}

	meta := pagination.CalculateMeta(params, total)
	return patients, &meta, nil
}

func (r *Repository) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.FirstName != nil {
		updates = append(updates, fmt.Sprintf("first_name = $%d", argIndex))
		args = append(args, *req.FirstName)
		argIndex++
	}
	if req.LastName != nil {
		updates = append(updates, fmt.Sprintf("last_name = $%d", argIndex))
		args = append(args, *req.LastName)
		argIndex++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *req.Email)
		argIndex++
	}
	if req.PhoneNumber != nil {
		updates = append(updates, fmt.Sprintf("phone_number = $%d", argIndex))
		args = append(args, *req.PhoneNumber)
		argIndex++
	}
	if req.DateOfBirth != nil {
		updates = append(updates, fmt.Sprintf("date_of_birth = $%d", argIndex))
		args = append(args, *req.DateOfBirth)
		argIndex++
	}
	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argIndex))
		args = append(args, *req.Address)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())
	argIndex++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE clinic.patients
		SET %s
		WHERE id = $%d
		RETURNING `+patientColumns,
		strings.Join(updates, ", "), argIndex)

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*Patient, error) {
	var p Patient
	var dob, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.PhoneNumber,
		&dob,
		&p.Address,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dob.Valid {
		formatted := dob.Time.Format(dateLayout)
		p.DateOfBirth = &formatted
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return &p, nil
}
