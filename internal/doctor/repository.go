package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/clinic-service/internal/pagination"
)

const doctorColumns = "id, full_name, specialty, email, phone, is_active, created_at, updated_at"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	doctorID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.doctors
		(id, full_name, specialty, email, phone, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, true, $6)
		RETURNING ` + doctorColumns

	d, err := scanDoctor(r.db.QueryRowContext(ctx, query,
		doctorID,
		req.FullName,
		req.Specialty,
		req.Email,
		req.Phone,
		createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert doctor: %w", err)
	}
	return d, nil
}

func (r *Repository) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM clinic.doctors
		WHERE id = $1
	`

	d, err := scanDoctor(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor: %w", err)
	}
	return d, nil
}

func (r *Repository) ListDoctors(ctx context.Context, params pagination.Params) ([]Doctor, *pagination.Meta, error) {
	params.Validate()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clinic.doctors`).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := `
		SELECT ` + doctorColumns + `
		FROM clinic.doctors
		ORDER BY full_name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating doctors: %w", err)
	}

	meta := pagination.CalculateMeta(params, total)
	return doctors, &meta, nil
}

func (r *Repository) UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*Doctor, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIndex))
		args = append(args, *req.FullName)
		argIndex++
	}
	if req.Specialty != nil {
		updates = append(updates, fmt.Sprintf("specialty = $%d", argIndex))
		args = append(args, *req.Specialty)
		argIndex++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *req.Email)
		argIndex++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *req.Phone)
		argIndex++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *req.IsActive)
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
		UPDATE clinic.doctors
		SET %s
		WHERE id = $%d
		RETURNING `+doctorColumns,
		strings.Join(updates, ", "), argIndex)

	d, err := scanDoctor(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return d, nil
}

func (r *Repository) DeleteDoctor(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clinic.doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*Doctor, error) {
	var d Doctor
	var updatedAt sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.FullName,
		&d.Specialty,
		&d.Email,
		&d.Phone,
		&d.IsActive,
		&d.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		d.UpdatedAt = &updatedAt.Time
	}
	return &d, nil
}
