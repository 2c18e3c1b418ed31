// Package audit bridges Books lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend
// on any particular audit store. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/hook"
	"github.com/craftbooks/books/payment"
)

// Compile-time interface checks.
var (
	_ hook.Hook                 = (*Extension)(nil)
	_ hook.OnInvoiceCreated     = (*Extension)(nil)
	_ hook.OnInvoiceUpdated     = (*Extension)(nil)
	_ hook.OnInvoiceDeleted     = (*Extension)(nil)
	_ hook.OnOrderCreated       = (*Extension)(nil)
	_ hook.OnOrderStatusChanged = (*Extension)(nil)
	_ hook.OnPaymentRecorded    = (*Extension)(nil)
	_ hook.OnPaymentDeleted     = (*Extension)(nil)
	_ hook.OnExpenseRecorded    = (*Extension)(nil)
	_ hook.OnCustomerCreated    = (*Extension)(nil)
	_ hook.OnStateRestored      = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *Event) error
}

// Event is a local representation of an audit event.
type Event struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *Event) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Extension bridges Books lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements hook.Hook.
func (e *Extension) Name() string { return "audit" }

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements hook.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, inv *document.Invoice) error {
	return e.record(ctx, ActionInvoiceCreated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID, CategoryBilling, nil,
		"customer_id", inv.CustomerID,
		"line_items", len(inv.Items),
	)
}

// OnInvoiceUpdated implements hook.OnInvoiceUpdated.
func (e *Extension) OnInvoiceUpdated(ctx context.Context, _, updated *document.Invoice) error {
	return e.record(ctx, ActionInvoiceUpdated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, updated.ID, CategoryBilling, nil,
		"line_items", len(updated.Items),
	)
}

// OnInvoiceDeleted implements hook.OnInvoiceDeleted.
func (e *Extension) OnInvoiceDeleted(ctx context.Context, invoiceID string) error {
	return e.record(ctx, ActionInvoiceDeleted, SeverityWarning, OutcomeSuccess,
		ResourceInvoice, invoiceID, CategoryBilling, nil,
	)
}

// ──────────────────────────────────────────────────
// Sales order lifecycle hooks
// ──────────────────────────────────────────────────

// OnOrderCreated implements hook.OnOrderCreated.
func (e *Extension) OnOrderCreated(ctx context.Context, ord *document.SalesOrder) error {
	return e.record(ctx, ActionOrderCreated, SeverityInfo, OutcomeSuccess,
		ResourceOrder, ord.ID, CategorySales, nil,
		"status", string(ord.Status),
	)
}

// OnOrderStatusChanged implements hook.OnOrderStatusChanged.
func (e *Extension) OnOrderStatusChanged(ctx context.Context, ord *document.SalesOrder, from, to document.OrderStatus) error {
	return e.record(ctx, ActionOrderStatusChanged, SeverityInfo, OutcomeSuccess,
		ResourceOrder, ord.ID, CategorySales, nil,
		"from", string(from),
		"to", string(to),
	)
}

// ──────────────────────────────────────────────────
// Payment and expense hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded implements hook.OnPaymentRecorded.
func (e *Extension) OnPaymentRecorded(ctx context.Context, p *payment.Payment) error {
	return e.record(ctx, ActionPaymentRecorded, SeverityInfo, OutcomeSuccess,
		ResourcePayment, p.ID.String(), CategoryPayment, nil,
		"invoice_id", p.InvoiceID,
		"amount", p.Amount,
		"method", p.Method,
	)
}

// OnPaymentDeleted implements hook.OnPaymentDeleted.
func (e *Extension) OnPaymentDeleted(ctx context.Context, p *payment.Payment) error {
	return e.record(ctx, ActionPaymentDeleted, SeverityWarning, OutcomeSuccess,
		ResourcePayment, p.ID.String(), CategoryPayment, nil,
		"invoice_id", p.InvoiceID,
		"amount", p.Amount,
	)
}

// OnExpenseRecorded implements hook.OnExpenseRecorded.
func (e *Extension) OnExpenseRecorded(ctx context.Context, ex *expense.Expense) error {
	return e.record(ctx, ActionExpenseRecorded, SeverityInfo, OutcomeSuccess,
		ResourceExpense, ex.ID.String(), CategoryExpense, nil,
		"category", ex.Category,
		"amount", ex.Amount,
	)
}

// ──────────────────────────────────────────────────
// Customer and state hooks
// ──────────────────────────────────────────────────

// OnCustomerCreated implements hook.OnCustomerCreated.
func (e *Extension) OnCustomerCreated(ctx context.Context, c *customer.Customer) error {
	return e.record(ctx, ActionCustomerCreated, SeverityInfo, OutcomeSuccess,
		ResourceCustomer, c.ID.String(), CategoryParty, nil,
	)
}

// OnStateRestored implements hook.OnStateRestored.
func (e *Extension) OnStateRestored(ctx context.Context, reason string) error {
	return e.record(ctx, ActionStateRestored, SeverityWarning, OutcomeSuccess,
		ResourceState, "", CategoryAdmin, nil,
		"reason", reason,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &Event{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
