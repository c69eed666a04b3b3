package doctor

import (
	"context"

	"github.com/meditrack/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for doctor business logic
type ServiceInterface interface {
	CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error)
	GetDoctor(ctx context.Context, id string) (*Doctor, error)
	ListDoctors(ctx context.Context, params pagination.Params) ([]Doctor, *pagination.Meta, error)
	UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*Doctor, error)
	DeleteDoctor(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
