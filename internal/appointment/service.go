package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meditrack/clinic-service/internal/pagination"
	"github.com/meditrack/clinic-service/internal/schedule"
)

type Service struct {
	repo      RepositoryInterface
	schedules ScheduleSource
	metrics   MetricsRecorder
}

func NewService(repo RepositoryInterface, schedules ScheduleSource) *Service {
	return NewServiceWithMetrics(repo, schedules, nil)
}

// NewServiceWithMetrics creates a service that records scheduling metrics.
// A nil recorder disables recording.
func NewServiceWithMetrics(repo RepositoryInterface, schedules ScheduleSource, metrics MetricsRecorder) *Service {
	return &Service{repo: repo, schedules: schedules, metrics: metrics}
}

func (s *Service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.DoctorID == "" {
		return nil, ErrMissingDoctorID
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if _, err := schedule.ParseClock(req.AppointmentTime); err != nil {
		return nil, err
	}

	booked, err := s.repo.Book(ctx, req)
	if errors.Is(err, ErrSlotConflict) {
		if s.metrics != nil {
			s.metrics.RecordSlotConflict(ctx, req.DoctorID)
		}
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordAppointmentOperation(ctx, "book")
	}
	return booked, nil
}

func (s *Service) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error) {
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if _, err := schedule.ParseClock(req.AppointmentTime); err != nil {
		return nil, err
	}

	moved, err := s.repo.Reschedule(ctx, id, req)
	if errors.Is(err, ErrSlotConflict) {
		if s.metrics != nil {
			s.metrics.RecordSlotConflict(ctx, "")
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordAppointmentOperation(ctx, "reschedule")
	}
	return moved, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus Status) (*Appointment, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordAppointmentOperation(ctx, "status_change")
	}
	return updated, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordAppointmentOperation(ctx, "delete")
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) ListByDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]Appointment, error) {
	if doctorID == "" {
		return nil, ErrMissingDoctorID
	}
	return s.repo.ListByDoctorDate(ctx, doctorID, date)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Appointment, *pagination.Meta, error) {
	if patientID == "" {
		return nil, nil, ErrMissingPatientID
	}
	return s.repo.ListByPatient(ctx, patientID, params)
}

// AvailableSlots resolves the bookable slot starts for a doctor on a date
// from the doctor's active weekly rules and that day's appointments. A
// doctor with no rule for the weekday gets an empty list, not an error.
func (s *Service) AvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	if doctorID == "" {
		return nil, ErrMissingDoctorID
	}

	rules, err := s.schedules.ListActiveByDoctorDay(ctx, doctorID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load working schedules: %w", err)
	}

	existing, err := s.repo.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	return ComputeAvailableSlots(date, rules, existing), nil
}

// CheckSlotFree answers whether a free-form start/duration would collide
// with the doctor's existing appointments. The start need not sit on any
// schedule grid.
func (s *Service) CheckSlotFree(ctx context.Context, doctorID string, date time.Time, startTime string, durationMinutes int) (bool, error) {
	if doctorID == "" {
		return false, ErrMissingDoctorID
	}
	if durationMinutes <= 0 {
		return false, ErrInvalidDuration
	}
	if _, err := schedule.ParseClock(startTime); err != nil {
		return false, err
	}

	existing, err := s.repo.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return false, fmt.Errorf("failed to load appointments: %w", err)
	}

	return IsSlotFree(date, startTime, durationMinutes, existing, ""), nil
}
