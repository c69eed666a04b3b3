package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meditrack/clinic-service/internal/pagination"
)

type Service struct {
	repo    RepositoryInterface
	metrics MetricsRecorder
}

func NewService(repo RepositoryInterface) *Service {
	return NewServiceWithMetrics(repo, nil)
}

// NewServiceWithMetrics creates a service that records ledger metrics.
// A nil recorder disables recording.
func NewServiceWithMetrics(repo RepositoryInterface, metrics MetricsRecorder) *Service {
	return &Service{repo: repo, metrics: metrics}
}

func (s *Service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, ErrInvalidTotalAmount
		}
	}

	created, err := s.repo.CreateInvoice(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return created, nil
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) ListInvoicesByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Invoice, *pagination.Meta, error) {
	if patientID == "" {
		return nil, nil, ErrMissingPatientID
	}
	return s.repo.ListInvoicesByPatient(ctx, patientID, params)
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, *Invoice, error) {
	if req.InvoiceID == "" {
		return nil, nil, ErrMissingInvoiceID
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, ErrInvalidAmount
	}
	if !req.PaymentMethod.Valid() {
		return nil, nil, ErrInvalidPaymentMethod
	}

	payment, inv, err := s.repo.RecordPayment(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentOperation(ctx, "record")
	}
	return payment, inv, nil
}

func (s *Service) EditPayment(ctx context.Context, paymentID string, req EditPaymentRequest) (*Payment, *Invoice, error) {
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, ErrInvalidAmount
	}
	if req.PaymentMethod != nil && !req.PaymentMethod.Valid() {
		return nil, nil, ErrInvalidPaymentMethod
	}

	payment, inv, err := s.repo.EditPayment(ctx, paymentID, req)
	if err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentOperation(ctx, "edit")
	}
	return payment, inv, nil
}

func (s *Service) DeletePayment(ctx context.Context, paymentID string) (*Invoice, error) {
	inv, err := s.repo.DeletePayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentOperation(ctx, "delete")
	}
	return inv, nil
}

func (s *Service) RefundPayment(ctx context.Context, paymentID string) (*Payment, *Invoice, error) {
	payment, inv, err := s.repo.RefundPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentOperation(ctx, "refund")
	}
	return payment, inv, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]Payment, error) {
	if invoiceID == "" {
		return nil, ErrMissingInvoiceID
	}
	return s.repo.ListPaymentsByInvoice(ctx, invoiceID)
}
