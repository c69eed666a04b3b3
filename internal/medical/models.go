package medical

import "time"

// MedicalHistory is a long-lived condition or allergy note on a patient's
// record, independent of any single visit.
type MedicalHistory struct {
	ID         string     `json:"id"`
	PatientID  string     `json:"patient_id"`
	Condition  string     `json:"condition"`
	Notes      string     `json:"notes,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// MedicalVisit documents one consultation. It always belongs to a patient
// and may additionally reference the appointment it happened under; at most
// one visit exists per appointment.
type MedicalVisit struct {
	ID               string     `json:"id"`
	PatientID        string     `json:"patient_id"`
	DoctorID         string     `json:"doctor_id"`
	AppointmentID    *string    `json:"appointment_id,omitempty"`
	VisitDate        time.Time  `json:"visit_date"`
	Symptoms         string     `json:"symptoms,omitempty"`
	ExaminationNotes string     `json:"examination_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// Diagnosis is a conclusion reached during a visit.
type Diagnosis struct {
	ID        string    `json:"id"`
	VisitID   string    `json:"visit_id"`
	Code      string    `json:"code,omitempty"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Prescription is medication prescribed during a visit.
type Prescription struct {
	ID           string    `json:"id"`
	VisitID      string    `json:"visit_id"`
	Medication   string    `json:"medication"`
	Dosage       string    `json:"dosage"`
	DurationDays int       `json:"duration_days"`
	Instructions string    `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PregnancyRecord tracks a pregnancy for a patient.
type PregnancyRecord struct {
	ID              string     `json:"id"`
	PatientID       string     `json:"patient_id"`
	StartDate       time.Time  `json:"start_date"`
	ExpectedDueDate *time.Time `json:"expected_due_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// PregnancyFollowup is a checkup in the course of a pregnancy. It may hang
// off the visit where it happened, off the pregnancy record directly, or
// both; it must reference at least one of the two.
type PregnancyFollowup struct {
	ID              string    `json:"id"`
	VisitID         *string   `json:"visit_id,omitempty"`
	PregnancyID     *string   `json:"pregnancy_id,omitempty"`
	GestationalWeek int       `json:"gestational_week"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateVisitRequest represents the request to record a medical visit
type CreateVisitRequest struct {
	PatientID        string    `json:"patient_id"`
	DoctorID         string    `json:"doctor_id"`
	AppointmentID    *string   `json:"appointment_id,omitempty"`
	VisitDate        time.Time `json:"visit_date"`
	Symptoms         string    `json:"symptoms,omitempty"`
	ExaminationNotes string    `json:"examination_notes,omitempty"`
}

// CreateHistoryRequest represents the request to add a medical history entry
type CreateHistoryRequest struct {
	PatientID  string    `json:"patient_id"`
	Condition  string    `json:"condition"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CreateDiagnosisRequest represents the request to add a diagnosis to a visit
type CreateDiagnosisRequest struct {
	VisitID string `json:"visit_id"`
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Notes   string `json:"notes,omitempty"`
}

// CreatePrescriptionRequest represents the request to add a prescription to a visit
type CreatePrescriptionRequest struct {
	VisitID      string `json:"visit_id"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	DurationDays int    `json:"duration_days"`
	Instructions string `json:"instructions,omitempty"`
}

// CreatePregnancyRequest represents the request to open a pregnancy record
type CreatePregnancyRequest struct {
	PatientID       string     `json:"patient_id"`
	StartDate       time.Time  `json:"start_date"`
	ExpectedDueDate *time.Time `json:"expected_due_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// CreateFollowupRequest represents the request to record a pregnancy followup
type CreateFollowupRequest struct {
	VisitID         *string `json:"visit_id,omitempty"`
	PregnancyID     *string `json:"pregnancy_id,omitempty"`
	GestationalWeek int     `json:"gestational_week"`
	Notes           string  `json:"notes,omitempty"`
}
