package billing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meditrack/clinic-service/internal/messaging"
	"github.com/meditrack/clinic-service/internal/pagination"
)

const invoiceColumns = "id, patient_id, total_amount, paid_amount, remaining_amount, payment_status, issued_date, notes, created_at, updated_at"
const paymentColumns = "id, invoice_id, amount, payment_method, is_refunded, refunded_at, created_at, updated_at"

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{db: db, publisher: publisher}
}

// CreateInvoice inserts an invoice with its line items. The total is the sum
// of the line totals; the derived fields start from an empty payment set.
func (r *Repository) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	remaining, status := DeriveStatus(total, decimal.Zero)

	invoiceID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.invoices
		(id, patient_id, total_amount, paid_amount, remaining_amount, payment_status, issued_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + invoiceColumns

	inv, err := scanInvoice(tx.QueryRowContext(ctx, query,
		invoiceID,
		req.PatientID,
		total,
		decimal.Zero,
		remaining,
		status,
		req.IssuedDate,
		req.Notes,
		createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO clinic.invoice_items
		(id, invoice_id, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range req.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemID := uuid.New()
		if _, err := tx.ExecContext(ctx, itemQuery, itemID, inv.ID, item.Description, item.Quantity, item.UnitPrice, lineTotal); err != nil {
			return nil, fmt.Errorf("failed to insert invoice item: %w", err)
		}
		inv.Items = append(inv.Items, InvoiceItem{
			ID:          itemID.String(),
			InvoiceID:   inv.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit invoice: %w", err)
	}

	return inv, nil
}

func (r *Repository) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM clinic.invoices WHERE id = $1`

	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	itemQuery := `
		SELECT id, invoice_id, description, quantity, unit_price, line_total
		FROM clinic.invoice_items
		WHERE invoice_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice items: %w", err)
	}

	return inv, nil
}

func (r *Repository) ListInvoicesByPatient(ctx context.Context, patientID string, params pagination.Params) ([]Invoice, *pagination.Meta, error) {
	params.Validate()

	var total int
	countQuery := `SELECT COUNT(*) FROM clinic.invoices WHERE patient_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, patientID).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM clinic.invoices
		WHERE patient_id = $1
		ORDER BY issued_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, patientID, params.Limit, params.Offset())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	meta := pagination.CalculateMeta(params, total)
	return invoices, &meta, nil
}

// DeleteInvoice hard-deletes an invoice with its items and payments.
func (r *Repository) DeleteInvoice(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clinic.payments WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM clinic.invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete invoice items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM clinic.invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice deletion: %w", err)
	}
	return nil
}

// RecordPayment inserts a payment and folds its amount into the invoice's
// derived fields, all under a row lock on the invoice.
func (r *Repository) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, *Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inv, err := lockInvoiceTx(ctx, tx, req.InvoiceID)
	if err != nil {
		return nil, nil, err
	}

	paymentID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO clinic.payments
		(id, invoice_id, amount, payment_method, is_refunded, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING ` + paymentColumns

	payment, err := scanPayment(tx.QueryRowContext(ctx, query, paymentID, req.InvoiceID, req.Amount, req.PaymentMethod, createdAt))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	newPaid := inv.PaidAmount.Add(req.Amount)
	updated, err := writeDerivedTx(ctx, tx, inv.ID, newPaid)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	r.publishLedgerEvent(ctx, messaging.EventPaymentRecorded, payment, updated)
	r.publishStatusChange(ctx, inv, updated)
	return payment, updated, nil
}

// EditPayment changes a payment's amount and/or method, then recomputes the
// invoice's paid amount from the full non-refunded payment set rather than
// adjusting incrementally, so any drift is corrected instead of compounded.
func (r *Repository) EditPayment(ctx context.Context, paymentID string, req EditPaymentRequest) (*Payment, *Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getPaymentTx(ctx, tx, paymentID, false)
	if err != nil {
		return nil, nil, err
	}

	// Invoice lock first, then the payment row. Every ledger operation
	// acquires in this order.
	inv, err := lockInvoiceTx(ctx, tx, current.InvoiceID)
	if err != nil {
		return nil, nil, err
	}

	current, err = getPaymentTx(ctx, tx, paymentID, true)
	if err != nil {
		return nil, nil, err
	}
	if current.IsRefunded {
		return nil, nil, ErrEditRefundedPayment
	}

	amount := current.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	method := current.PaymentMethod
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}

	query := `
		UPDATE clinic.payments
		SET amount = $1, payment_method = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + paymentColumns

	payment, err := scanPayment(tx.QueryRowContext(ctx, query, amount, method, time.Now().UTC(), paymentID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update payment: %w", err)
	}

	newPaid, err := sumActiveTx(ctx, tx, inv.ID)
	if err != nil {
		return nil, nil, err
	}
	updated, err := writeDerivedTx(ctx, tx, inv.ID, newPaid)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payment edit: %w", err)
	}

	r.publishStatusChange(ctx, inv, updated)
	return payment, updated, nil
}

// DeletePayment hard-deletes a payment. A refunded payment is already
// excluded from the paid amount, so only an active payment moves the ledger.
func (r *Repository) DeletePayment(ctx context.Context, paymentID string) (*Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getPaymentTx(ctx, tx, paymentID, false)
	if err != nil {
		return nil, err
	}

	inv, err := lockInvoiceTx(ctx, tx, current.InvoiceID)
	if err != nil {
		return nil, err
	}

	current, err = getPaymentTx(ctx, tx, paymentID, true)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clinic.payments WHERE id = $1`, paymentID); err != nil {
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	newPaid := inv.PaidAmount
	if !current.IsRefunded {
		newPaid = newPaid.Sub(current.Amount)
	}
	updated, err := writeDerivedTx(ctx, tx, inv.ID, newPaid)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment deletion: %w", err)
	}

	r.publishLedgerEvent(ctx, messaging.EventPaymentDeleted, current, updated)
	r.publishStatusChange(ctx, inv, updated)
	return updated, nil
}

// RefundPayment marks a payment refunded and removes its amount from the
// invoice's paid amount. The transition is one-way.
func (r *Repository) RefundPayment(ctx context.Context, paymentID string) (*Payment, *Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getPaymentTx(ctx, tx, paymentID, false)
	if err != nil {
		return nil, nil, err
	}

	inv, err := lockInvoiceTx(ctx, tx, current.InvoiceID)
	if err != nil {
		return nil, nil, err
	}

	current, err = getPaymentTx(ctx, tx, paymentID, true)
	if err != nil {
		return nil, nil, err
	}
	if current.IsRefunded {
		return nil, nil, ErrAlreadyRefunded
	}

	query := `
		UPDATE clinic.payments
		SET is_refunded = TRUE, refunded_at = now(), updated_at = now()
		WHERE id = $1
		RETURNING ` + paymentColumns

	payment, err := scanPayment(tx.QueryRowContext(ctx, query, paymentID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to refund payment: %w", err)
	}

	newPaid := inv.PaidAmount.Sub(current.Amount)
	updated, err := writeDerivedTx(ctx, tx, inv.ID, newPaid)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit refund: %w", err)
	}

	r.publishLedgerEvent(ctx, messaging.EventPaymentRefunded, payment, updated)
	r.publishStatusChange(ctx, inv, updated)
	return payment, updated, nil
}

func (r *Repository) GetPayment(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM clinic.payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

func (r *Repository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM clinic.payments
		WHERE invoice_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, nil
}

// lockInvoiceTx reads the invoice under FOR UPDATE so concurrent ledger
// operations on the same invoice serialize.
func lockInvoiceTx(ctx context.Context, tx *sql.Tx, invoiceID string) (*Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM clinic.invoices WHERE id = $1 FOR UPDATE`

	inv, err := scanInvoice(tx.QueryRowContext(ctx, query, invoiceID))
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock invoice: %w", err)
	}
	return inv, nil
}

func getPaymentTx(ctx context.Context, tx *sql.Tx, paymentID string, forUpdate bool) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM clinic.payments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	payment, err := scanPayment(tx.QueryRowContext(ctx, query, paymentID))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// sumActiveTx recomputes the paid amount from the full non-refunded payment
// set inside the current transaction.
func sumActiveTx(ctx context.Context, tx *sql.Tx, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM clinic.payments
		WHERE invoice_id = $1 AND is_refunded = FALSE
	`
	if err := tx.QueryRowContext(ctx, query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	return sum, nil
}

// writeDerivedTx persists the recomputed derived fields for an invoice.
func writeDerivedTx(ctx context.Context, tx *sql.Tx, invoiceID string, paidAmount decimal.Decimal) (*Invoice, error) {
	var total decimal.Decimal
	if err := tx.QueryRowContext(ctx, `SELECT total_amount FROM clinic.invoices WHERE id = $1`, invoiceID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to read invoice total: %w", err)
	}
	remaining, status := DeriveStatus(total, paidAmount)

	query := `
		UPDATE clinic.invoices
		SET paid_amount = $1, remaining_amount = $2, payment_status = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + invoiceColumns

	inv, err := scanInvoice(tx.QueryRowContext(ctx, query, paidAmount, remaining, status, time.Now().UTC(), invoiceID))
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice totals: %w", err)
	}
	return inv, nil
}

func (r *Repository) publishLedgerEvent(ctx context.Context, eventType string, payment *Payment, inv *Invoice) {
	occurredAt := payment.CreatedAt
	if payment.RefundedAt != nil {
		occurredAt = *payment.RefundedAt
	}

	event := messaging.PaymentRecordedEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.PaymentLedgerData{
			PaymentID:       payment.ID,
			InvoiceID:       inv.ID,
			PatientID:       inv.PatientID,
			Amount:          payment.Amount.String(),
			PaymentMethod:   string(payment.PaymentMethod),
			PaidAmount:      inv.PaidAmount.String(),
			RemainingAmount: inv.RemainingAmount.String(),
			PaymentStatus:   string(inv.PaymentStatus),
			OccurredAt:      occurredAt,
		},
	}
	if err := r.publisher.Publish(ctx, eventType, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

func (r *Repository) publishStatusChange(ctx context.Context, before, after *Invoice) {
	if before.PaymentStatus == after.PaymentStatus {
		return
	}

	event := messaging.InvoiceStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventInvoiceStatusChanged),
		Data: messaging.InvoiceStatusChangedData{
			InvoiceID: after.ID,
			PatientID: after.PatientID,
			OldStatus: string(before.PaymentStatus),
			NewStatus: string(after.PaymentStatus),
			ChangedAt: time.Now().UTC(),
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventInvoiceStatusChanged, event); err != nil {
		log.Printf("Warning: failed to publish invoice.status_changed event: %v", err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*Invoice, error) {
	var inv Invoice
	var updatedAt sql.NullTime

	err := row.Scan(
		&inv.ID,
		&inv.PatientID,
		&inv.TotalAmount,
		&inv.PaidAmount,
		&inv.RemainingAmount,
		&inv.PaymentStatus,
		&inv.IssuedDate,
		&inv.Notes,
		&inv.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		inv.UpdatedAt = &updatedAt.Time
	}
	return &inv, nil
}

func scanPayment(row rowScanner) (*Payment, error) {
	var p Payment
	var refundedAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.InvoiceID,
		&p.Amount,
		&p.PaymentMethod,
		&p.IsRefunded,
		&refundedAt,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refundedAt.Valid {
		p.RefundedAt = &refundedAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return &p, nil
}
