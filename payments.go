package books

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/engine"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/types"
)

// ──────────────────────────────────────────────────
// Payment Management
// ──────────────────────────────────────────────────

// RecordPayment stores a payment against an invoice. The invoice must
// exist and the amount must be a positive finite number.
func (b *Books) RecordPayment(ctx context.Context, p *payment.Payment) error {
	if p.InvoiceID == "" {
		return ValidationError{Field: "invoice_id", Message: "invoice number is required"}
	}
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return ErrInvalidAmount
	}
	if _, err := b.store.GetInvoice(ctx, p.InvoiceID); err != nil {
		return err
	}

	if p.ID.IsNil() {
		p.ID = id.NewPaymentID()
	}
	p.Entity = types.NewEntity()
	if p.Date.IsZero() {
		p.Date = b.clock()
	}

	if err := b.withUndo(ctx, func() error {
		return b.store.CreatePayment(ctx, p)
	}); err != nil {
		return err
	}

	b.hooks.EmitPaymentRecorded(ctx, p)
	return nil
}

// GetPayment retrieves a payment by ID.
func (b *Books) GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	return b.store.GetPayment(ctx, paymentID)
}

// ListPayments lists payments ordered by date.
func (b *Books) ListPayments(ctx context.Context, opts payment.ListOpts) ([]*payment.Payment, error) {
	return b.store.ListPayments(ctx, opts)
}

// DeletePayment removes a payment, restoring the invoice's balance.
func (b *Books) DeletePayment(ctx context.Context, paymentID id.PaymentID) error {
	p, err := b.store.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := b.withUndo(ctx, func() error {
		return b.store.DeletePayment(ctx, paymentID)
	}); err != nil {
		return err
	}

	b.hooks.EmitPaymentDeleted(ctx, p)
	return nil
}

// PaymentActivity merges manual payments with debit line items
// embedded in invoices into a single audit trail, newest first. Line
// entries take their method from the account code's display name.
func (b *Books) PaymentActivity(ctx context.Context) ([]payment.Activity, error) {
	payments, err := b.store.ListPayments(ctx, payment.ListOpts{})
	if err != nil {
		return nil, err
	}
	invoices, err := b.store.ListInvoices(ctx, document.ListOpts{})
	if err != nil {
		return nil, err
	}
	codes, err := b.store.ListAccountCodes(ctx)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		codes = nil
	}

	names := make(map[string]string, len(codes))
	for _, c := range codes {
		names[c.Code] = c.Name
	}

	activity := make([]payment.Activity, 0, len(payments))
	for _, p := range payments {
		activity = append(activity, payment.Activity{
			ID:        p.ID.String(),
			InvoiceID: p.InvoiceID,
			Amount:    p.Amount,
			Method:    p.Method,
			Date:      p.Date,
			Note:      p.Note,
			Source:    payment.SourceManual,
		})
	}
	for _, inv := range invoices {
		for i, item := range inv.Items {
			if !engine.IsDebitCode(item.Account) {
				continue
			}
			method := names[item.Account]
			if method == "" {
				method = item.Account
			}
			activity = append(activity, payment.Activity{
				ID:        fmt.Sprintf("%s-line-%d", inv.ID, i),
				InvoiceID: inv.ID,
				Amount:    math.Abs(item.Qty * item.Price),
				Method:    method,
				Date:      inv.Created,
				Note:      item.Desc,
				Source:    payment.SourceLine,
			})
		}
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})
	return activity, nil
}
