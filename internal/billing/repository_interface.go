package billing

import (
	"context"

	"github.com/meditrack/clinic-service/internal/pagination"
)

// RepositoryInterface defines the contract for invoice and payment
// persistence. Every ledger operation runs its read-recompute-write
// sequence inside one transaction with the invoice row locked, so
// concurrent payments against the same invoice serialize.
type RepositoryInterface interface {
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

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
