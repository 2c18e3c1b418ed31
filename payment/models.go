package payment

import (
	"time"

	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/types"
)

// Payment is an external credit recorded against an invoice's balance,
// independent of the invoice's line items. Payments may also be logged
// directly on a document as debit-coded line items; the balance
// reconciler accounts for both forms.
type Payment struct {
	types.Entity
	ID        id.PaymentID `json:"id"`
	InvoiceID string       `json:"invoice_id"`
	Amount    float64      `json:"amount"`
	Method    string       `json:"method"`
	Date      time.Time    `json:"date"`
	Note      string       `json:"note,omitempty"`
}

// Activity sources distinguish how a payment entered the books.
const (
	SourceManual = "manual"
	SourceLine   = "line"
)

// Activity is a unified audit-trail entry covering both manual
// payments and debit line items embedded in invoices. Line entries
// report the absolute value of the line and borrow the invoice's
// creation date.
type Activity struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	Source    string    `json:"source"`
}

// ListOpts filters and pages payment listings.
type ListOpts struct {
	InvoiceID string
	Start     time.Time
	End       time.Time
	Limit     int
	Offset    int
}
