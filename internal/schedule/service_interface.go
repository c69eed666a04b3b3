package schedule

import "context"

// ServiceInterface defines the contract for working schedule business logic
type ServiceInterface interface {
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*WorkingSchedule, error)
	GetSchedule(ctx context.Context, id string) (*WorkingSchedule, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]WorkingSchedule, error)
	UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*WorkingSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
