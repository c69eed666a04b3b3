package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meditrack/clinic-service/internal/pagination"
)

type mockRepository struct {
	createInvoiceFunc         func(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	getInvoiceFunc            func(ctx context.Context, id string) (*Invoice, error)
	listInvoicesByPatientFunc func(ctx context.Context, patientID string, params pagination.Params) ([]Invoice, *pagination.Meta, error)
	deleteInvoiceFunc         func(ctx context.Context, id string) error
	recordPaymentFunc         func(ctx context.Context, req RecordPaymentRequest) (*Payment, *Invoice, error)
	editPaymentFunc           func(ctx context.Context, paymentID string, req EditPaymentRequest) (*Payment, *Invoice, error)
	deletePaymentFunc         func(ctx context.Context, paymentID string) (*Invoice, error)
	refundPaymentFunc         func(ctx context.Context, paymentID string) (*Payment, *Invoice, error)
	getPaymentFunc            func(ctx context.Context, id string) (*Payment, error)
	listPaymentsByInvoiceFunc func(ctx context.Context, invoiceID string) ([]Payment, error)
}

func (m *mockRepository) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if m.createInvoiceFunc != nil {
		return m.createInvoiceFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	if m.getInvoiceFunc != nil {
		return m.getInvoiceFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListInvoicesByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Invoice, *pagination.Meta, error) {
	if m.listInvoicesByPatientFunc != nil {
		return m.listInvoicesByPatientFunc(ctx, patientID, params)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockRepository) DeleteInvoice(ctx context.Context, id string) error {
	if m.deleteInvoiceFunc != nil {
		return m.deleteInvoiceFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, *Invoice, error) {
	if m.recordPaymentFunc != nil {
		return m.recordPaymentFunc(ctx, req)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockRepository) EditPayment(ctx context.Context, paymentID string, req EditPaymentRequest) (*Payment, *Invoice, error) {
	if m.editPaymentFunc != nil {
		return m.editPaymentFunc(ctx, paymentID, req)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockRepository) DeletePayment(ctx context.Context, paymentID string) (*Invoice, error) {
	if m.deletePaymentFunc != nil {
		return m.deletePaymentFunc(ctx, paymentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) RefundPayment(ctx context.Context, paymentID string) (*Payment, *Invoice, error) {
	if m.refundPaymentFunc != nil {
		return m.refundPaymentFunc(ctx, paymentID)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockRepository) GetPayment(ctx context.Context, id string) (*Payment, error) {
	if m.getPaymentFunc != nil {
		return m.getPaymentFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]Payment, error) {
	if m.listPaymentsByInvoiceFunc != nil {
		return m.listPaymentsByInvoiceFunc(ctx, invoiceID)
	}
	return nil, errors.New("not implemented")
}

func TestRecordPayment_Success(t *testing.T) {
	mockRepo := &mockRepository{
		recordPaymentFunc: func(ctx context.Context, req RecordPaymentRequest) (*Payment, *Invoice, error) {
			remaining, status := DeriveStatus(dec("912"), req.Amount)
			return &Payment{ID: "pay-1", InvoiceID: req.InvoiceID, Amount: req.Amount, PaymentMethod: req.PaymentMethod},
				&Invoice{ID: req.InvoiceID, TotalAmount: dec("912"), PaidAmount: req.Amount, RemainingAmount: remaining, PaymentStatus: status},
				nil
		},
	}
	service := NewService(mockRepo)

	payment, inv, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID:     "inv-1",
		Amount:        dec("150"),
		PaymentMethod: MethodCash,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !payment.Amount.Equal(dec("150")) {
		t.Errorf("Expected payment amount 150, got %s", payment.Amount)
	}
	if !inv.RemainingAmount.Equal(dec("762")) {
		t.Errorf("Expected remaining 762, got %s", inv.RemainingAmount)
	}
	if inv.PaymentStatus != StatusPartial {
		t.Errorf("Expected PARTIAL, got %s", inv.PaymentStatus)
	}
}

func TestRecordPayment_ValidationErrors(t *testing.T) {
	service := NewService(&mockRepository{})

	testCases := []struct {
		name     string
		req      RecordPaymentRequest
		expected error
	}{
		{"Missing invoice", RecordPaymentRequest{Amount: dec("10"), PaymentMethod: MethodCash}, ErrMissingInvoiceID},
		{"Zero amount", RecordPaymentRequest{InvoiceID: "inv-1", Amount: decimal.Zero, PaymentMethod: MethodCash}, ErrInvalidAmount},
		{"Negative amount", RecordPaymentRequest{InvoiceID: "inv-1", Amount: dec("-5"), PaymentMethod: MethodCash}, ErrInvalidAmount},
		{"Bad method", RecordPaymentRequest{InvoiceID: "inv-1", Amount: dec("10"), PaymentMethod: PaymentMethod("CHEQUE")}, ErrInvalidPaymentMethod},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := service.RecordPayment(context.Background(), tc.req)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestEditPayment_InvalidAmount(t *testing.T) {
	service := NewService(&mockRepository{})

	bad := decimal.Zero
	_, _, err := service.EditPayment(context.Background(), "pay-1", EditPaymentRequest{Amount: &bad})

	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestRefundPayment_AlreadyRefunded(t *testing.T) {
	mockRepo := &mockRepository{
		refundPaymentFunc: func(ctx context.Context, paymentID string) (*Payment, *Invoice, error) {
			return nil, nil, ErrAlreadyRefunded
		},
	}
	service := NewService(mockRepo)

	_, _, err := service.RefundPayment(context.Background(), "pay-1")

	if !errors.Is(err, ErrAlreadyRefunded) {
		t.Errorf("Expected ErrAlreadyRefunded, got %v", err)
	}
}

func TestCreateInvoice_InvalidItem(t *testing.T) {
	service := NewService(&mockRepository{})

	_, err := service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		PatientID: "patient-1",
		Items: []CreateInvoiceItemRequest{
			{Description: "Consultation", Quantity: 0, UnitPrice: dec("50")},
		},
	})

	if !errors.Is(err, ErrInvalidTotalAmount) {
		t.Errorf("Expected ErrInvalidTotalAmount, got %v", err)
	}
}
