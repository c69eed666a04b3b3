package appointment

import (
	"context"
	"time"

	"github.com/meditrack/clinic-service/internal/pagination"
	"github.com/meditrack/clinic-service/internal/schedule"
)

// ServiceInterface defines the contract for appointment business logic
type ServiceInterface interface {
	Book(ctx context.Context, req BookRequest) (*Appointment, error)
	Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error)
	UpdateStatus(ctx context.Context, id string, newStatus Status) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	GetAppointment(ctx context.Context, id string) (*Appointment, error)
	ListByDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Appointment, *pagination.Meta, error)
	AvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]string, error)
	CheckSlotFree(ctx context.Context, doctorID string, date time.Time, startTime string, durationMinutes int) (bool, error)
}

// ScheduleSource provides the active weekly rules a doctor has for a given
// weekday. Satisfied by schedule.Repository.
type ScheduleSource interface {
	ListActiveByDoctorDay(ctx context.Context, doctorID string, dayOfWeek int) ([]schedule.WorkingSchedule, error)
}

// MetricsRecorder interface for recording scheduling metrics
type MetricsRecorder interface {
	RecordAppointmentOperation(ctx context.Context, operation string)
	RecordSlotConflict(ctx context.Context, doctorID string)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
