// Package observability provides a metrics extension for Books that
// records lifecycle event counts via a pluggable MetricFactory.
package observability

import (
	"context"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/engine"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/hook"
	"github.com/craftbooks/books/payment"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ hook.Hook                 = (*MetricsExtension)(nil)
	_ hook.OnInit               = (*MetricsExtension)(nil)
	_ hook.OnInvoiceCreated     = (*MetricsExtension)(nil)
	_ hook.OnInvoiceUpdated     = (*MetricsExtension)(nil)
	_ hook.OnInvoiceDeleted     = (*MetricsExtension)(nil)
	_ hook.OnOrderCreated       = (*MetricsExtension)(nil)
	_ hook.OnOrderStatusChanged = (*MetricsExtension)(nil)
	_ hook.OnPaymentRecorded    = (*MetricsExtension)(nil)
	_ hook.OnPaymentDeleted     = (*MetricsExtension)(nil)
	_ hook.OnExpenseRecorded    = (*MetricsExtension)(nil)
	_ hook.OnCustomerCreated    = (*MetricsExtension)(nil)
	_ hook.OnStateRestored      = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Books hook to automatically track bookkeeping metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Invoice metrics
	InvoiceCreated Counter
	InvoiceUpdated Counter
	InvoiceDeleted Counter
	InvoiceTotal   Histogram

	// Sales order metrics
	OrderCreated   Counter
	OrderConfirmed Counter
	OrderCompleted Counter

	// Payment metrics
	PaymentRecorded Counter
	PaymentDeleted  Counter
	PaymentAmount   Histogram

	// Expense metrics
	ExpenseRecorded Counter
	ExpenseAmount   Histogram

	// Customer metrics
	CustomerCreated Counter

	// State metrics
	StateRestored Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Invoice metrics
		InvoiceCreated: factory.Counter("books.invoice.created"),
		InvoiceUpdated: factory.Counter("books.invoice.updated"),
		InvoiceDeleted: factory.Counter("books.invoice.deleted"),
		InvoiceTotal:   factory.Histogram("books.invoice.total_amount"),

		// Sales order metrics
		OrderCreated:   factory.Counter("books.order.created"),
		OrderConfirmed: factory.Counter("books.order.confirmed"),
		OrderCompleted: factory.Counter("books.order.completed"),

		// Payment metrics
		PaymentRecorded: factory.Counter("books.payment.recorded"),
		PaymentDeleted:  factory.Counter("books.payment.deleted"),
		PaymentAmount:   factory.Histogram("books.payment.amount"),

		// Expense metrics
		ExpenseRecorded: factory.Counter("books.expense.recorded"),
		ExpenseAmount:   factory.Histogram("books.expense.amount"),

		// Customer metrics
		CustomerCreated: factory.Counter("books.customer.created"),

		// State metrics
		StateRestored: factory.Counter("books.state.restored"),
	}
}

// Name implements hook.Hook.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements hook.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements hook.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, inv *document.Invoice) error {
	m.InvoiceCreated.Inc()
	m.InvoiceTotal.Observe(engine.DocTotals(inv.Items, inv.Meta, inv.DirectMaterials).Total)
	return nil
}

// OnInvoiceUpdated implements hook.OnInvoiceUpdated.
func (m *MetricsExtension) OnInvoiceUpdated(_ context.Context, _, updated *document.Invoice) error {
	m.InvoiceUpdated.Inc()
	m.InvoiceTotal.Observe(engine.DocTotals(updated.Items, updated.Meta, updated.DirectMaterials).Total)
	return nil
}

// OnInvoiceDeleted implements hook.OnInvoiceDeleted.
func (m *MetricsExtension) OnInvoiceDeleted(_ context.Context, _ string) error {
	m.InvoiceDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Sales order lifecycle hooks
// ──────────────────────────────────────────────────

// OnOrderCreated implements hook.OnOrderCreated.
func (m *MetricsExtension) OnOrderCreated(_ context.Context, _ *document.SalesOrder) error {
	m.OrderCreated.Inc()
	return nil
}

// OnOrderStatusChanged implements hook.OnOrderStatusChanged.
func (m *MetricsExtension) OnOrderStatusChanged(_ context.Context, _ *document.SalesOrder, _, to document.OrderStatus) error {
	switch to {
	case document.OrderConfirmed:
		m.OrderConfirmed.Inc()
	case document.OrderCompleted:
		m.OrderCompleted.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Payment and expense hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded implements hook.OnPaymentRecorded.
func (m *MetricsExtension) OnPaymentRecorded(_ context.Context, p *payment.Payment) error {
	m.PaymentRecorded.Inc()
	m.PaymentAmount.Observe(p.Amount)
	return nil
}

// OnPaymentDeleted implements hook.OnPaymentDeleted.
func (m *MetricsExtension) OnPaymentDeleted(_ context.Context, _ *payment.Payment) error {
	m.PaymentDeleted.Inc()
	return nil
}

// OnExpenseRecorded implements hook.OnExpenseRecorded.
func (m *MetricsExtension) OnExpenseRecorded(_ context.Context, e *expense.Expense) error {
	m.ExpenseRecorded.Inc()
	m.ExpenseAmount.Observe(e.Amount)
	return nil
}

// ──────────────────────────────────────────────────
// Customer and state hooks
// ──────────────────────────────────────────────────

// OnCustomerCreated implements hook.OnCustomerCreated.
func (m *MetricsExtension) OnCustomerCreated(_ context.Context, _ *customer.Customer) error {
	m.CustomerCreated.Inc()
	return nil
}

// OnStateRestored implements hook.OnStateRestored.
func (m *MetricsExtension) OnStateRestored(_ context.Context, _ string) error {
	m.StateRestored.Inc()
	return nil
}
