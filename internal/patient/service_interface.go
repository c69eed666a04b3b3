package patient

import (
	"context"

	"github.com/meditrack/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for patient business logic
type ServiceInterface interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
	ListPatients(ctx context.Context, params pagination.Params) ([]Patient, *pagination.Meta, error)
	UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error)
	DeletePatient(ctx context.Context, id string) error
}

// CascadeDeleter removes a patient together with every dependent record.
// Satisfied by CascadeService.
type CascadeDeleter interface {
	DeletePatientCascade(ctx context.Context, patientID string) error
}

var _ CascadeDeleter = (*CascadeService)(nil)

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
