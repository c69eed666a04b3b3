package patient

import "errors"

var (
	ErrMissingFirstName = errors.New("first name is required")
	ErrMissingLastName  = errors.New("last name is required")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrCascadeFailed    = errors.New("patient cascade deletion failed")
)
