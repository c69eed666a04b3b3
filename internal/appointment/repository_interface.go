package appointment

import (
	"context"
	"time"

	"github.com/meditrack/clinic-service/internal/pagination"
)

// RepositoryInterface defines the contract for appointment persistence.
// Book and Reschedule run the availability re-check and the write inside
// one serializable transaction so concurrent requests for the same slot
// cannot both succeed.
type RepositoryInterface interface {
	Book(ctx context.Context, req BookRequest) (*Appointment, error)
	Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error)
	UpdateStatus(ctx context.Context, id string, newStatus Status) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	GetAppointment(ctx context.Context, id string) (*Appointment, error)
	ListByDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Appointment, *pagination.Meta, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
