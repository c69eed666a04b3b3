package patient

import (
	"context"
	"fmt"

	"github.com/meditrack/clinic-service/internal/pagination"
)

type Service struct {
	repo    RepositoryInterface
	cascade CascadeDeleter
}

func NewService(repo RepositoryInterface, cascade CascadeDeleter) *Service {
	return &Service{repo: repo, cascade: cascade}
}

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if req.FirstName == "" {
		return nil, ErrMissingFirstName
	}
	if req.LastName == "" {
		return nil, ErrMissingLastName
	}

	created, err := s.repo.CreatePatient(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return created, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, params pagination.Params) ([]Patient, *pagination.Meta, error) {
	return s.repo.ListPatients(ctx, params)
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	if req.FirstName != nil && *req.FirstName == "" {
		return nil, ErrMissingFirstName
	}
	if req.LastName != nil && *req.LastName == "" {
		return nil, ErrMissingLastName
	}
	return s.repo.UpdatePatient(ctx, id, req)
}

// DeletePatient removes the patient and the full dependent record forest.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.cascade.DeletePatientCascade(ctx, id)
}
