package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// PurgeService permanently deletes cancelled and no-show appointments older
// than the retention period. Intended to run as a scheduled job.
type PurgeService struct {
	db        *sql.DB
	retention time.Duration
	batchSize int
}

// NewPurgeService creates a new purge service
func NewPurgeService(db *sql.DB, retention time.Duration, batchSize int) *PurgeService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &PurgeService{db: db, retention: retention, batchSize: batchSize}
}

// CountStale returns how many appointments are eligible for purging
func (s *PurgeService) CountStale(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.retention)

	var count int
	query := `
		SELECT COUNT(*)
		FROM clinic.appointments
		WHERE status IN ($1, $2)
		AND appointment_date < $3
	`

	err := s.db.QueryRowContext(ctx, query, StatusCancelled, StatusNoShow, cutoff.Format(DateLayout)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stale appointments: %w", err)
	}

	return count, nil
}

// PurgeStale deletes eligible appointments in batches until none remain,
// returning the total number deleted. Batching keeps each delete short so
// the job never holds long row locks against live booking traffic.
func (s *PurgeService) PurgeStale(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.retention)
	log.Printf("Starting purge of cancelled/no-show appointments dated before %s", cutoff.Format(DateLayout))

	query := `
		DELETE FROM clinic.appointments
		WHERE id IN (
			SELECT id
			FROM clinic.appointments
			WHERE status IN ($1, $2)
			AND appointment_date < $3
			ORDER BY appointment_date ASC
			LIMIT $4
		)
	`

	total := 0
	for {
		result, err := s.db.ExecContext(ctx, query, StatusCancelled, StatusNoShow, cutoff.Format(DateLayout), s.batchSize)
		if err != nil {
			return total, fmt.Errorf("failed to purge stale appointments: %w", err)
		}

		deleted, err := result.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to get rows affected: %w", err)
		}

		total += int(deleted)
		if int(deleted) < s.batchSize {
			break
		}
	}

	log.Printf("Successfully purged %d stale appointments", total)
	return total, nil
}
