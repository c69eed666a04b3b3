package patient

import (
	"context"

	"github.com/meditrack/clinic-service/internal/pagination"
)

// RepositoryInterface defines the contract for patient persistence
type RepositoryInterface interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
	ListPatients(ctx context.Context, params pagination.Params) ([]Patient, *pagination.Meta, error)
	UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
