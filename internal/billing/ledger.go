package billing

import "github.com/shopspring/decimal"

// DeriveStatus computes an invoice's remaining amount and settlement status
// from its total and the sum of non-refunded payments. It is the single
// source of truth for both derived fields: remaining is clamped so an
// overpayment never yields a negative value, and an invoice with nothing
// left to pay is PAID even when the total itself was zero.
func DeriveStatus(totalAmount, paidAmount decimal.Decimal) (decimal.Decimal, PaymentStatus) {
	remaining := totalAmount.Sub(paidAmount)

	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return decimal.Zero, StatusPaid
	case paidAmount.GreaterThan(decimal.Zero):
		return remaining, StatusPartial
	default:
		return remaining, StatusUnpaid
	}
}

// SumActive totals the non-refunded payments of an invoice.
func SumActive(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.IsRefunded {
			continue
		}
		sum = sum.Add(p.Amount)
	}
	return sum
}
