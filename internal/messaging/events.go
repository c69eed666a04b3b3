package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Appointment events
	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentRescheduled   = "appointment.rescheduled"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentDeleted       = "appointment.deleted"

	// Payment ledger events
	EventPaymentRecorded      = "payment.recorded"
	EventPaymentRefunded      = "payment.refunded"
	EventPaymentDeleted       = "payment.deleted"
	EventInvoiceStatusChanged = "invoice.status_changed"

	// Patient events
	EventPatientCreated = "patient.created"
	EventPatientDeleted = "patient.deleted"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// AppointmentBookedEvent represents a successful booking
type AppointmentBookedEvent struct {
	BaseEvent
	Data AppointmentBookedData `json:"data"`
}

type AppointmentBookedData struct {
	AppointmentID   string    `json:"appointment_id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentDate string    `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string    `json:"appointment_time"` // HH:MM
	DurationMinutes int       `json:"duration_minutes"`
	BookedAt        time.Time `json:"booked_at"`
}

// AppointmentRescheduledEvent represents a date/time/duration change
type AppointmentRescheduledEvent struct {
	BaseEvent
	Data AppointmentRescheduledData `json:"data"`
}

type AppointmentRescheduledData struct {
	AppointmentID   string    `json:"appointment_id"`
	DoctorID        string    `json:"doctor_id"`
	OldDate         string    `json:"old_date"`
	OldTime         string    `json:"old_time"`
	NewDate         string    `json:"new_date"`
	NewTime         string    `json:"new_time"`
	DurationMinutes int       `json:"duration_minutes"`
	ChangedAt       time.Time `json:"changed_at"`
}

// AppointmentStatusChangedEvent represents a status transition
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// AppointmentDeletedEvent represents a hard deletion
type AppointmentDeletedEvent struct {
	BaseEvent
	Data AppointmentDeletedData `json:"data"`
}

type AppointmentDeletedData struct {
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	DeletedAt     time.Time `json:"deleted_at"`
}

// PaymentRecordedEvent represents a new payment against an invoice
type PaymentRecordedEvent struct {
	BaseEvent
	Data PaymentLedgerData `json:"data"`
}

// PaymentRefundedEvent represents a payment refund
type PaymentRefundedEvent struct {
	BaseEvent
	Data PaymentLedgerData `json:"data"`
}

// PaymentDeletedEvent represents a payment hard deletion
type PaymentDeletedEvent struct {
	BaseEvent
	Data PaymentLedgerData `json:"data"`
}

// PaymentLedgerData carries the payment plus the invoice totals after the operation
type PaymentLedgerData struct {
	PaymentID       string    `json:"payment_id"`
	InvoiceID       string    `json:"invoice_id"`
	PatientID       string    `json:"patient_id"`
	Amount          string    `json:"amount"` // exact decimal, serialized as string
	PaymentMethod   string    `json:"payment_method"`
	PaidAmount      string    `json:"paid_amount"`
	RemainingAmount string    `json:"remaining_amount"`
	PaymentStatus   string    `json:"payment_status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// InvoiceStatusChangedEvent fires when a ledger operation moves an invoice
// between UNPAID / PARTIAL / PAID
type InvoiceStatusChangedEvent struct {
	BaseEvent
	Data InvoiceStatusChangedData `json:"data"`
}

type InvoiceStatusChangedData struct {
	InvoiceID string    `json:"invoice_id"`
	PatientID string    `json:"patient_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// PatientCreatedEvent represents a patient registration
type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID string    `json:"patient_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientDeletedEvent represents a completed cascade deletion
type PatientDeletedEvent struct {
	BaseEvent
	Data PatientDeletedData `json:"data"`
}

type PatientDeletedData struct {
	PatientID   string    `json:"patient_id"`
	RowsDeleted int64     `json:"rows_deleted"`
	DeletedAt   time.Time `json:"deleted_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "clinic-service",
	}
}
