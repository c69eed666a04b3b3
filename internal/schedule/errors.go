package schedule

import "errors"

var (
	ErrMissingDoctorID     = errors.New("doctor id is required")
	ErrInvalidDayOfWeek    = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidClockTime    = errors.New("clock time must be HH:MM in 24h format")
	ErrInvalidSlotDuration = errors.New("slot duration must be greater than zero")
	ErrScheduleNotFound    = errors.New("working schedule not found")
)
