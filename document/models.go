package document

import (
	"time"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/types"
)

// RateType selects how a DocMeta adjustment is interpreted.
type RateType string

const (
	// RatePercent applies the value as a percentage of the adjustment base.
	RatePercent RateType = "percent"
	// RateFlat applies the value as a flat currency amount.
	RateFlat RateType = "flat"
)

// LineItem is one row of a document. Account codes beginning with "30"
// denote debit (payment-received) lines; all other codes are credit
// (revenue) lines.
type LineItem struct {
	Account string  `json:"account"`
	Desc    string  `json:"desc"`
	Qty     float64 `json:"qty"`
	Price   float64 `json:"price"`
}

// DocMeta governs the computed adjustments on a document: discount,
// tax and processing fee, each either percent or flat.
type DocMeta struct {
	DiscountRate float64  `json:"discount_rate"`
	DiscountType RateType `json:"discount_type"`
	TaxRate      float64  `json:"tax_rate"`
	TaxType      RateType `json:"tax_type"`
	FeeValue     float64  `json:"fee_value"`
	FeeType      RateType `json:"fee_type"`
	LaborRate    *float64 `json:"labor_rate,omitempty"`
}

// DefaultMeta returns a DocMeta with zero rates and percent types.
func DefaultMeta() DocMeta {
	return DocMeta{
		DiscountType: RatePercent,
		TaxType:      RatePercent,
		FeeType:      RatePercent,
	}
}

// Invoice is a billable document. Its ID is the string form of its
// sequential number (allocated from the existing collection, baseline
// 1000). Paid/unpaid status is derived from the outstanding balance
// and is never stored authoritatively.
type Invoice struct {
	types.Entity
	ID              string             `json:"id"`
	Seq             int64              `json:"seq"`
	CustomerID      string             `json:"customer_id,omitempty"`
	ManualCustomer  *customer.Customer `json:"manual_customer,omitempty"`
	Created         time.Time          `json:"created"`
	Due             time.Time          `json:"due"`
	Items           []LineItem         `json:"items"`
	Meta            DocMeta            `json:"meta"`
	DirectMaterials float64            `json:"direct_materials,omitempty"`
}

// InvoiceStatus is the derived payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePaid   InvoiceStatus = "Paid"
	InvoiceUnpaid InvoiceStatus = "Unpaid"
)

// OrderStatus is the workflow state of a sales order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCompleted OrderStatus = "Completed"
)

// rank orders the workflow states; transitions never regress.
func (s OrderStatus) rank() int {
	switch s {
	case OrderPending:
		return 0
	case OrderConfirmed:
		return 1
	case OrderCompleted:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is a known workflow state.
func (s OrderStatus) Valid() bool { return s.rank() >= 0 }

// CanTransitionTo reports whether moving from s to next is allowed.
// Orders progress Pending → Confirmed → Completed and never regress.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return next.Valid() && next.rank() >= s.rank()
}

// SalesOrder is a pre-invoice workflow document. It shares line items
// and meta with invoices but carries an explicit workflow status and a
// display number of the form "SO-<seq>".
type SalesOrder struct {
	types.Entity
	ID              string             `json:"id"`
	Seq             int64              `json:"seq"`
	CustomerID      string             `json:"customer_id,omitempty"`
	ManualCustomer  *customer.Customer `json:"manual_customer,omitempty"`
	Status          OrderStatus        `json:"status"`
	Created         time.Time          `json:"created"`
	Items           []LineItem         `json:"items"`
	Meta            DocMeta            `json:"meta"`
	DirectMaterials float64            `json:"direct_materials,omitempty"`
}

// ListOpts filters and pages document listings.
type ListOpts struct {
	CustomerID string
	Status     OrderStatus
	Limit      int
	Offset     int
}
