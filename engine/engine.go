// Package engine implements the document financial-totals engine: pure,
// stateless functions that compute line-item values, document totals
// (discount, tax and fee adjustments), outstanding invoice balances and
// sequential document numbers.
//
// Everything here is a pure function over its inputs with no I/O and no
// shared state. The order in which adjustments apply, and the two-track
// treatment of debit (payment) line items, are load-bearing business
// rules; see DocTotals and InvoiceBalance before changing anything.
package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/payment"
)

// debitPrefix marks payment-received account codes. Lines on these
// codes represent value leaving the receivable.
const debitPrefix = "30"

// invoiceSeqBaseline is the floor for invoice numbering: the first
// invoice in an empty collection is numbered 1001.
const invoiceSeqBaseline = 1000

// IsDebitCode reports whether an account code denotes a debit
// (payment-received) line. All other codes are credit (revenue) lines.
func IsDebitCode(code string) bool {
	return strings.HasPrefix(code, debitPrefix)
}

// num coerces malformed numeric input to 0 so that a document with
// incomplete data still totals to a sane number.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// LineItemValue computes the signed value of one line item. The base is
// qty × price; debit-coded lines are negated because they reduce the
// receivable rather than add to it.
func LineItemValue(item document.LineItem) float64 {
	base := num(item.Qty) * num(item.Price)
	if IsDebitCode(item.Account) {
		return -base
	}
	return base
}

// Totals is the computed financial breakdown of a document.
type Totals struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Fee      float64 `json:"fee"`
	Total    float64 `json:"total"`
}

// DocTotals aggregates a document's line items and optional
// direct-materials surcharge into base, discount, tax, fee and total.
//
// Adjustments are computed off the credit lines only: a payment logged
// as a debit line item reduces the total dollar-for-dollar but never
// retroactively changes the discount, tax or fee base. The application
// order is discount, then tax on the discounted base, then fee on the
// taxed amount.
func DocTotals(items []document.LineItem, meta document.DocMeta, directMaterials float64) Totals {
	directMaterials = num(directMaterials)

	var base, creditsOnly float64
	for _, item := range items {
		v := LineItemValue(item)
		base += v
		if !IsDebitCode(item.Account) {
			creditsOnly += v
		}
	}
	// Direct materials are always a revenue addition, never subject to
	// the debit-sign flip.
	base += directMaterials
	creditsOnly += directMaterials

	var discount float64
	if r := num(meta.DiscountRate); r != 0 {
		if meta.DiscountType == document.RateFlat {
			discount = r
		} else {
			discount = creditsOnly * r / 100
		}
	}

	taxedBase := creditsOnly - discount

	var tax float64
	if r := num(meta.TaxRate); r != 0 {
		if meta.TaxType == document.RateFlat {
			tax = r
		} else {
			tax = taxedBase * r / 100
		}
	}

	feeBase := taxedBase + tax

	var fee float64
	if r := num(meta.FeeValue); r != 0 {
		if meta.FeeType == document.RateFlat {
			fee = r
		} else {
			fee = feeBase * r / 100
		}
	}

	adjustments := tax + fee - discount

	return Totals{
		Base:     base,
		Discount: discount,
		Tax:      tax,
		Fee:      fee,
		Total:    base + adjustments,
	}
}

// InvoiceBalance computes the outstanding amount owed on an invoice.
//
// Payment can arrive two ways: as a structured Payment record, or as a
// debit line item embedded in the invoice itself (e.g. cash logged at
// creation time). Both offset the receivable. The credits-and-
// adjustments figure is re-derived from the credit lines alone; debit
// lines are excluded from that sub-computation entirely, then their
// absolute values are subtracted alongside the recorded payments.
// Overpayment clamps to zero; a negative balance is never reported.
func InvoiceBalance(inv *document.Invoice, payments []payment.Payment) float64 {
	credits := make([]document.LineItem, 0, len(inv.Items))
	var debitLinesSum float64
	for _, item := range inv.Items {
		if IsDebitCode(item.Account) {
			debitLinesSum += math.Abs(LineItemValue(item))
			continue
		}
		credits = append(credits, item)
	}

	creditsAndAdjustments := DocTotals(credits, inv.Meta, inv.DirectMaterials).Total

	var recorded float64
	for _, p := range payments {
		if p.InvoiceID == inv.ID {
			recorded += num(p.Amount)
		}
	}

	return math.Max(0, creditsAndAdjustments-(recorded+debitLinesSum))
}

// InvoiceStatus derives the payment state of an invoice from its
// outstanding balance.
func InvoiceStatus(inv *document.Invoice, payments []payment.Payment) document.InvoiceStatus {
	if InvoiceBalance(inv, payments) == 0 {
		return document.InvoicePaid
	}
	return document.InvoiceUnpaid
}

// NextInvoiceSeq returns the next invoice number: the maximum numeric
// invoice ID in the collection (non-numeric IDs ignored), floored at
// the 1000 baseline, plus one. The result must be applied against the
// same snapshot it was derived from; callers serialize allocation.
func NextInvoiceSeq(invoices []document.Invoice) int64 {
	maxSeq := int64(invoiceSeqBaseline)
	for _, inv := range invoices {
		n, err := strconv.ParseInt(inv.ID, 10, 64)
		if err != nil {
			continue
		}
		if n > maxSeq {
			maxSeq = n
		}
	}
	return maxSeq + 1
}

// NextOrderSeq returns the next sales-order sequence number: the
// maximum existing seq (missing treated as 0) plus one.
func NextOrderSeq(orders []document.SalesOrder) int64 {
	var maxSeq int64
	for _, ord := range orders {
		if ord.Seq > maxSeq {
			maxSeq = ord.Seq
		}
	}
	return maxSeq + 1
}
