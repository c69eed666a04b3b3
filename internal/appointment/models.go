package appointment

import "time"

// Status is the closed set of appointment lifecycle states.
type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Occupies reports whether an appointment in this status blocks the
// doctor's calendar. Cancelled and no-show appointments free their slot.
func (s Status) Occupies() bool {
	switch s {
	case StatusCancelled, StatusNoShow:
		return false
	case StatusBooked, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used throughout the service.
const DateLayout = "2006-01-02"

// Appointment is a booked visit on a doctor's calendar. Date is a calendar
// date (midnight UTC); Time is the clock time ("HH:MM") within that day.
type Appointment struct {
	ID              string     `json:"id"`
	PatientID       string     `json:"patient_id"`
	DoctorID        string     `json:"doctor_id"`
	AppointmentDate time.Time  `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"` // Format: HH:MM
	DurationMinutes int        `json:"duration_minutes"`
	Status          Status     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// BookRequest represents the request to book an appointment
type BookRequest struct {
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// RescheduleRequest represents a date/time/duration change for an existing
// appointment
type RescheduleRequest struct {
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	DurationMinutes int       `json:"duration_minutes"`
}
