package schedule

import (
	"context"
	"fmt"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*WorkingSchedule, error) {
	if req.DoctorID == "" {
		return nil, ErrMissingDoctorID
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}
	if _, err := ParseClock(req.StartTime); err != nil {
		return nil, err
	}
	if _, err := ParseClock(req.EndTime); err != nil {
		return nil, err
	}
	if req.SlotDurationMinutes <= 0 {
		return nil, ErrInvalidSlotDuration
	}

	created, err := s.repo.CreateSchedule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create working schedule: %w", err)
	}
	return created, nil
}

func (s *Service) GetSchedule(ctx context.Context, id string) (*WorkingSchedule, error) {
	return s.repo.GetSchedule(ctx, id)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID string) ([]WorkingSchedule, error) {
	if doctorID == "" {
		return nil, ErrMissingDoctorID
	}
	schedules, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working schedules: %w", err)
	}
	return schedules, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*WorkingSchedule, error) {
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return nil, ErrInvalidDayOfWeek
	}
	if req.StartTime != nil {
		if _, err := ParseClock(*req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if _, err := ParseClock(*req.EndTime); err != nil {
			return nil, err
		}
	}
	if req.SlotDurationMinutes != nil && *req.SlotDurationMinutes <= 0 {
		return nil, ErrInvalidSlotDuration
	}

	updated, err := s.repo.UpdateSchedule(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	return s.repo.DeleteSchedule(ctx, id)
}
