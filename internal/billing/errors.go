package billing

import "errors"

var (
	ErrMissingPatientID     = errors.New("patient id is required")
	ErrMissingInvoiceID     = errors.New("invoice id is required")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidTotalAmount   = errors.New("invoice total must not be negative")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrAlreadyRefunded      = errors.New("payment is already refunded")
	ErrEditRefundedPayment  = errors.New("refunded payments cannot be edited")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrPaymentNotFound      = errors.New("payment not found")
)
