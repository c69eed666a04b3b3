package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the closed set of invoice settlement states. It is
// derived state only: DeriveStatus is the single writer, no code path sets
// it directly.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "UNPAID"
	StatusPartial PaymentStatus = "PARTIAL"
	StatusPaid    PaymentStatus = "PAID"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// PaymentMethod is the closed set of accepted payment channels.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodMobile   PaymentMethod = "MOBILE"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodMobile:
		return true
	}
	return false
}

// Invoice is a bill issued to a patient. PaidAmount, RemainingAmount and
// PaymentStatus are a materialized cache of the payment set; every ledger
// operation recomputes them inside its own transaction.
type Invoice struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patient_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	IssuedDate      time.Time       `json:"issued_date"`
	Notes           string          `json:"notes,omitempty"`
	Items           []InvoiceItem   `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Payment is money received against an invoice. Refunding is one-way: a
// refunded payment keeps its row but no longer counts toward PaidAmount.
type Payment struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	IsRefunded    bool            `json:"is_refunded"`
	RefundedAt    *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	PatientID  string                     `json:"patient_id"`
	IssuedDate time.Time                  `json:"issued_date"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []CreateInvoiceItemRequest `json:"items"`
}

// CreateInvoiceItemRequest represents one line of a new invoice
type CreateInvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// RecordPaymentRequest represents the request to record a payment
type RecordPaymentRequest struct {
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// EditPaymentRequest changes a payment's amount and/or method. Nil fields
// are left untouched.
type EditPaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod *PaymentMethod   `json:"payment_method,omitempty"`
}
