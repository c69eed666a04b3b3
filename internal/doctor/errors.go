package doctor

import "errors"

var (
	ErrMissingFullName = errors.New("full name is required")
	ErrDoctorNotFound  = errors.New("doctor not found")
)
