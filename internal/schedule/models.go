package schedule

import "time"

// WorkingSchedule is one recurring weekly availability rule for a doctor.
// Times are clock times ("HH:MM", 24h) with no date or timezone attached;
// DayOfWeek follows time.Weekday numbering (0 = Sunday).
type WorkingSchedule struct {
	ID                  string     `json:"id"`
	DoctorID            string     `json:"doctor_id"`
	DayOfWeek           int        `json:"day_of_week"`
	StartTime           string     `json:"start_time"` // Format: HH:MM
	EndTime             string     `json:"end_time"`   // Format: HH:MM
	SlotDurationMinutes int        `json:"slot_duration_minutes"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// CreateScheduleRequest represents the request to create a weekly rule
type CreateScheduleRequest struct {
	DoctorID            string `json:"doctor_id"`
	DayOfWeek           int    `json:"day_of_week"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

// UpdateScheduleRequest represents the request to update a weekly rule
type UpdateScheduleRequest struct {
	DayOfWeek           *int    `json:"day_of_week,omitempty"`
	StartTime           *string `json:"start_time,omitempty"`
	EndTime             *string `json:"end_time,omitempty"`
	SlotDurationMinutes *int    `json:"slot_duration_minutes,omitempty"`
	IsActive            *bool   `json:"is_active,omitempty"`
}
