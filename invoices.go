package books

import (
	"context"
	"strconv"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/engine"
	"github.com/craftbooks/books/materials"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/types"
)

// ──────────────────────────────────────────────────
// Invoice Management
// ──────────────────────────────────────────────────

// CreateInvoice numbers and stores a new invoice. The invoice number is
// derived from the highest existing number and assigned here; any ID
// already set on the input is overwritten.
func (b *Books) CreateInvoice(ctx context.Context, inv *document.Invoice) error {
	b.seqMu.Lock()
	defer b.seqMu.Unlock()

	existing, err := b.store.ListInvoices(ctx, document.ListOpts{})
	if err != nil {
		return err
	}
	all := make([]document.Invoice, len(existing))
	for i := range existing {
		all[i] = *existing[i]
	}

	seq := engine.NextInvoiceSeq(all)
	inv.Seq = seq
	inv.ID = strconv.FormatInt(seq, 10)
	inv.Entity = types.NewEntity()
	normalizeMeta(&inv.Meta)
	if inv.Created.IsZero() {
		inv.Created = b.clock()
	}
	if inv.Due.IsZero() {
		inv.Due = inv.Created
	}

	if err := b.withUndo(ctx, func() error {
		return b.store.CreateInvoice(ctx, inv)
	}); err != nil {
		return err
	}

	b.hooks.EmitInvoiceCreated(ctx, inv)
	return nil
}

// GetInvoice retrieves an invoice by its number.
func (b *Books) GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error) {
	return b.store.GetInvoice(ctx, invoiceID)
}

// ListInvoices lists invoices ordered by number.
func (b *Books) ListInvoices(ctx context.Context, opts document.ListOpts) ([]*document.Invoice, error) {
	return b.store.ListInvoices(ctx, opts)
}

// UpdateInvoice replaces an invoice's content. The invoice number never
// changes.
func (b *Books) UpdateInvoice(ctx context.Context, inv *document.Invoice) error {
	if inv.ID == "" {
		return ValidationError{Field: "id", Message: "invoice number is required"}
	}

	old, err := b.store.GetInvoice(ctx, inv.ID)
	if err != nil {
		return err
	}

	normalizeMeta(&inv.Meta)
	inv.Seq = old.Seq
	inv.CreatedAt = old.CreatedAt
	inv.Touch()

	if err := b.withUndo(ctx, func() error {
		return b.store.UpdateInvoice(ctx, inv)
	}); err != nil {
		return err
	}

	b.hooks.EmitInvoiceUpdated(ctx, old, inv)
	return nil
}

// DeleteInvoice removes an invoice. Payments recorded against it are
// kept; they remain visible in the payment log and reports.
func (b *Books) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := b.withUndo(ctx, func() error {
		return b.store.DeleteInvoice(ctx, invoiceID)
	}); err != nil {
		return err
	}

	b.hooks.EmitInvoiceDeleted(ctx, invoiceID)
	return nil
}

// InvoiceTotals computes the financial breakdown of an invoice.
func (b *Books) InvoiceTotals(ctx context.Context, invoiceID string) (engine.Totals, error) {
	inv, err := b.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return engine.Totals{}, err
	}
	return engine.DocTotals(inv.Items, inv.Meta, inv.DirectMaterials), nil
}

// InvoiceBalance computes the outstanding amount owed on an invoice,
// net of recorded payments and embedded debit lines.
func (b *Books) InvoiceBalance(ctx context.Context, invoiceID string) (float64, error) {
	inv, payments, err := b.invoiceWithPayments(ctx, invoiceID)
	if err != nil {
		return 0, err
	}
	return engine.InvoiceBalance(inv, payments), nil
}

// InvoiceStatus derives the paid/unpaid state of an invoice.
func (b *Books) InvoiceStatus(ctx context.Context, invoiceID string) (document.InvoiceStatus, error) {
	inv, payments, err := b.invoiceWithPayments(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	return engine.InvoiceStatus(inv, payments), nil
}

func (b *Books) invoiceWithPayments(ctx context.Context, invoiceID string) (*document.Invoice, []payment.Payment, error) {
	inv, err := b.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	list, err := b.store.ListPayments(ctx, payment.ListOpts{InvoiceID: invoiceID})
	if err != nil {
		return nil, nil, err
	}
	payments := make([]payment.Payment, len(list))
	for i := range list {
		payments[i] = *list[i]
	}
	return inv, payments, nil
}

// AddInvoiceLine appends a line item to an invoice.
func (b *Books) AddInvoiceLine(ctx context.Context, invoiceID string, item document.LineItem) error {
	inv, err := b.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	old := *inv

	inv.Items = append(inv.Items, item)
	inv.Touch()

	if err := b.withUndo(ctx, func() error {
		return b.store.UpdateInvoice(ctx, inv)
	}); err != nil {
		return err
	}

	b.hooks.EmitInvoiceUpdated(ctx, &old, inv)
	return nil
}

// PushMaterialsToInvoice appends a consumables line item priced from
// the estimate onto an invoice.
func (b *Books) PushMaterialsToInvoice(ctx context.Context, invoiceID string, est materials.Estimate) error {
	if !est.Billable() {
		return ErrNothingToBill
	}
	return b.AddInvoiceLine(ctx, invoiceID, est.LineItem())
}

// normalizeMeta fills in the adjustment types on a document that was
// built without them.
func normalizeMeta(m *document.DocMeta) {
	if m.DiscountType == "" {
		m.DiscountType = document.RatePercent
	}
	if m.TaxType == "" {
		m.TaxType = document.RatePercent
	}
	if m.FeeType == "" {
		m.FeeType = document.RatePercent
	}
}
