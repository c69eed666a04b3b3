package appointment

import "errors"

var (
	ErrMissingPatientID    = errors.New("patient id is required")
	ErrMissingDoctorID     = errors.New("doctor id is required")
	ErrInvalidDuration     = errors.New("appointment duration must be greater than zero")
	ErrSlotConflict        = errors.New("requested slot overlaps an existing appointment")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrInvalidTransition   = errors.New("appointment status transition not allowed")
)
