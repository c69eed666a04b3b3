package billing

import (
	"context"

	"github.com/meditrack/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for billing business logic
type ServiceInterface interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoicesByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Invoice, *pagination.Meta, error)
	DeleteInvoice(ctx context.Context, id string) error

	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, *Invoice, error)
	EditPayment(ctx context.Context, paymentID string, req EditPaymentRequest) (*Payment, *Invoice, error)
	DeletePayment(ctx context.Context, paymentID string) (*Invoice, error)
	RefundPayment(ctx context.Context, paymentID string) (*Payment, *Invoice, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]Payment, error)
}

// MetricsRecorder interface for recording ledger metrics
type MetricsRecorder interface {
	RecordPaymentOperation(ctx context.Context, operation string)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
