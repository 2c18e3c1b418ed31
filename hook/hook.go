// Package hook provides an extensible hook system for Books.
// Hooks can observe lifecycle events to extend functionality.
package hook

import (
	"context"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/payment"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the books engine starts.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, b interface{}) error
}

// OnShutdown is called when the books engine is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called when a new invoice is created.
type OnInvoiceCreated interface {
	Hook
	OnInvoiceCreated(ctx context.Context, inv *document.Invoice) error
}

// OnInvoiceUpdated is called when an invoice is updated.
type OnInvoiceUpdated interface {
	Hook
	OnInvoiceUpdated(ctx context.Context, old, updated *document.Invoice) error
}

// OnInvoiceDeleted is called when an invoice is deleted.
type OnInvoiceDeleted interface {
	Hook
	OnInvoiceDeleted(ctx context.Context, invoiceID string) error
}

// ──────────────────────────────────────────────────
// Sales order lifecycle hooks
// ──────────────────────────────────────────────────

// OnOrderCreated is called when a new sales order is created.
type OnOrderCreated interface {
	Hook
	OnOrderCreated(ctx context.Context, ord *document.SalesOrder) error
}

// OnOrderStatusChanged is called when an order moves through the workflow.
type OnOrderStatusChanged interface {
	Hook
	OnOrderStatusChanged(ctx context.Context, ord *document.SalesOrder, from, to document.OrderStatus) error
}

// ──────────────────────────────────────────────────
// Payment and expense hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded is called when a payment is recorded.
type OnPaymentRecorded interface {
	Hook
	OnPaymentRecorded(ctx context.Context, p *payment.Payment) error
}

// OnPaymentDeleted is called when a payment is removed.
type OnPaymentDeleted interface {
	Hook
	OnPaymentDeleted(ctx context.Context, p *payment.Payment) error
}

// OnExpenseRecorded is called when an expense is recorded.
type OnExpenseRecorded interface {
	Hook
	OnExpenseRecorded(ctx context.Context, e *expense.Expense) error
}

// ──────────────────────────────────────────────────
// Customer hooks
// ──────────────────────────────────────────────────

// OnCustomerCreated is called when a customer is created.
type OnCustomerCreated interface {
	Hook
	OnCustomerCreated(ctx context.Context, c *customer.Customer) error
}

// ──────────────────────────────────────────────────
// State hooks
// ──────────────────────────────────────────────────

// OnStateRestored is called after an undo or a backup restore replaces
// the full data set.
type OnStateRestored interface {
	Hook
	OnStateRestored(ctx context.Context, reason string) error
}
