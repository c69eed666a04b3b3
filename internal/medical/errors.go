package medical

import "errors"

var (
	ErrMissingPatientID     = errors.New("patient id is required")
	ErrMissingDoctorID      = errors.New("doctor id is required")
	ErrMissingVisitID       = errors.New("visit id is required")
	ErrMissingReference     = errors.New("followup requires a visit or pregnancy reference")
	ErrVisitExists          = errors.New("appointment already has a medical visit")
	ErrVisitNotFound        = errors.New("medical visit not found")
	ErrHistoryNotFound      = errors.New("medical history entry not found")
	ErrDiagnosisNotFound    = errors.New("diagnosis not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPregnancyNotFound    = errors.New("pregnancy record not found")
	ErrFollowupNotFound     = errors.New("pregnancy followup not found")
)
