package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const scheduleColumns = "id, doctor_id, day_of_week, start_time, end_time, slot_duration_minutes, is_active, created_at, updated_at"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*WorkingSchedule, error) {
	scheduleID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.working_schedules
		(id, doctor_id, day_of_week, start_time, end_time, slot_duration_minutes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7)
		RETURNING ` + scheduleColumns

	row := r.db.QueryRowContext(ctx, query,
		scheduleID,
		req.DoctorID,
		req.DayOfWeek,
		req.StartTime,
		req.EndTime,
		req.SlotDurationMinutes,
		createdAt,
	)

	s, err := scanSchedule(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert working schedule: %w", err)
	}
	return s, nil
}

func (r *Repository) GetSchedule(ctx context.Context, id string) (*WorkingSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM clinic.working_schedules
		WHERE id = $1
	`

	s, err := scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query working schedule: %w", err)
	}
	return s, nil
}

func (r *Repository) ListByDoctor(ctx context.Context, doctorID string) ([]WorkingSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM clinic.working_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time
	`

	return r.list(ctx, query, doctorID)
}

func (r *Repository) ListActiveByDoctorDay(ctx context.Context, doctorID string, dayOfWeek int) ([]WorkingSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM clinic.working_schedules
		WHERE doctor_id = $1 AND day_of_week = $2 AND is_active = true
		ORDER BY start_time
	`

	return r.list(ctx, query, doctorID, dayOfWeek)
}

func (r *Repository) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*WorkingSchedule, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.DayOfWeek != nil {
		updates = append(updates, fmt.Sprintf("day_of_week = $%d", argIndex))
		args = append(args, *req.DayOfWeek)
		argIndex++
	}
	if req.StartTime != nil {
		updates = append(updates, fmt.Sprintf("start_time = $%d", argIndex))
		args = append(args, *req.StartTime)
		argIndex++
	}
	if req.EndTime != nil {
		updates = append(updates, fmt.Sprintf("end_time = $%d", argIndex))
		args = append(args, *req.EndTime)
		argIndex++
	}
	if req.SlotDurationMinutes != nil {
		updates = append(updates, fmt.Sprintf("slot_duration_minutes = $%d", argIndex))
		args = append(args, *req.SlotDurationMinutes)
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
		UPDATE clinic.working_schedules
		SET %s
		WHERE id = $%d
		RETURNING `+scheduleColumns,
		strings.Join(updates, ", "), argIndex)

	s, err := scanSchedule(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update working schedule: %w", err)
	}
	return s, nil
}

func (r *Repository) DeleteSchedule(ctx context.Context, id string) error {
	query := `DELETE FROM clinic.working_schedules WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete working schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]WorkingSchedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query working schedules: %w", err)
	}
	defer rows.Close()

	var schedules []WorkingSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan working schedule: %w", err)
		}
		schedules = append(schedules, *s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating working schedules: %w", err)
	}

	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*WorkingSchedule, error) {
	var s WorkingSchedule
	var updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.SlotDurationMinutes,
		&s.IsActive,
		&s.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		s.UpdatedAt = &updatedAt.Time
	}
	return &s, nil
}
