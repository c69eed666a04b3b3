package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// Scheduling metrics
	AppointmentTotal  metric.Int64Counter
	SlotConflictTotal metric.Int64Counter

	// Ledger metrics
	PaymentTotal metric.Int64Counter

	// Cascade deletion metrics
	CascadeDeleteTotal    metric.Int64Counter
	CascadeDeleteDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/meditrack/clinic-service")

	appointmentTotal, err := meter.Int64Counter(
		"appointment_total",
		metric.WithDescription("Total number of appointment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	slotConflictTotal, err := meter.Int64Counter(
		"slot_conflict_total",
		metric.WithDescription("Total number of bookings rejected because the slot was taken"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	paymentTotal, err := meter.Int64Counter(
		"payment_total",
		metric.WithDescription("Total number of payment ledger operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	cascadeDeleteTotal, err := meter.Int64Counter(
		"cascade_delete_total",
		metric.WithDescription("Total number of patient cascade deletions"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	cascadeDeleteDuration, err := meter.Float64Histogram(
		"cascade_delete_duration_milliseconds",
		metric.WithDescription("Patient cascade deletion duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		AppointmentTotal:      appointmentTotal,
		SlotConflictTotal:     slotConflictTotal,
		PaymentTotal:          paymentTotal,
		CascadeDeleteTotal:    cascadeDeleteTotal,
		CascadeDeleteDuration: cascadeDeleteDuration,
	}, nil
}

// RecordAppointmentOperation records an appointment operation metric
func (m *Metrics) RecordAppointmentOperation(ctx context.Context, operation string) {
	m.AppointmentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordSlotConflict records a rejected double-booking attempt
func (m *Metrics) RecordSlotConflict(ctx context.Context, doctorID string) {
	m.SlotConflictTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("doctor_id", doctorID),
	))
}

// RecordPaymentOperation records a payment ledger operation metric
func (m *Metrics) RecordPaymentOperation(ctx context.Context, operation string) {
	m.PaymentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordCascadeDelete records a patient cascade deletion and its duration
func (m *Metrics) RecordCascadeDelete(ctx context.Context, succeeded bool, durationMs float64) {
	m.CascadeDeleteTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("succeeded", succeeded),
	))
	m.CascadeDeleteDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.Bool("succeeded", succeeded),
	))
}
