package schedule

import "context"

// RepositoryInterface defines the contract for working schedule persistence
type RepositoryInterface interface {
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*WorkingSchedule, error)
	GetSchedule(ctx context.Context, id string) (*WorkingSchedule, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]WorkingSchedule, error)
	ListActiveByDoctorDay(ctx context.Context, doctorID string, dayOfWeek int) ([]WorkingSchedule, error)
	UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*WorkingSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
