package doctor

import (
	"context"
	"fmt"

	"github.com/meditrack/clinic-service/internal/pagination"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	if req.FullName == "" {
		return nil, ErrMissingFullName
	}

	created, err := s.repo.CreateDoctor(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return created, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, params pagination.Params) ([]Doctor, *pagination.Meta, error) {
	return s.repo.ListDoctors(ctx, params)
}

func (s *Service) UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*Doctor, error) {
	if req.FullName != nil && *req.FullName == "" {
		return nil, ErrMissingFullName
	}
	return s.repo.UpdateDoctor(ctx, id, req)
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return s.repo.DeleteDoctor(ctx, id)
}
