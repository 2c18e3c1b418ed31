package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/payment"
)

// Registry manages all registered hooks and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	// Type-cached hook lists for efficient dispatch
	onInit               []OnInit
	onShutdown           []OnShutdown
	onInvoiceCreated     []OnInvoiceCreated
	onInvoiceUpdated     []OnInvoiceUpdated
	onInvoiceDeleted     []OnInvoiceDeleted
	onOrderCreated       []OnOrderCreated
	onOrderStatusChanged []OnOrderStatusChanged
	onPaymentRecorded    []OnPaymentRecorded
	onPaymentDeleted     []OnPaymentDeleted
	onExpenseRecorded    []OnExpenseRecorded
	onCustomerCreated    []OnCustomerCreated
	onStateRestored      []OnStateRestored
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	// Type-switch to cache interfaces
	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := h.(OnInvoiceUpdated); ok {
		r.onInvoiceUpdated = append(r.onInvoiceUpdated, v)
	}
	if v, ok := h.(OnInvoiceDeleted); ok {
		r.onInvoiceDeleted = append(r.onInvoiceDeleted, v)
	}
	if v, ok := h.(OnOrderCreated); ok {
		r.onOrderCreated = append(r.onOrderCreated, v)
	}
	if v, ok := h.(OnOrderStatusChanged); ok {
		r.onOrderStatusChanged = append(r.onOrderStatusChanged, v)
	}
	if v, ok := h.(OnPaymentRecorded); ok {
		r.onPaymentRecorded = append(r.onPaymentRecorded, v)
	}
	if v, ok := h.(OnPaymentDeleted); ok {
		r.onPaymentDeleted = append(r.onPaymentDeleted, v)
	}
	if v, ok := h.(OnExpenseRecorded); ok {
		r.onExpenseRecorded = append(r.onExpenseRecorded, v)
	}
	if v, ok := h.(OnCustomerCreated); ok {
		r.onCustomerCreated = append(r.onCustomerCreated, v)
	}
	if v, ok := h.(OnStateRestored); ok {
		r.onStateRestored = append(r.onStateRestored, v)
	}

	r.logger.Info("hook registered", "name", h.Name())

	return nil
}

// Get returns a hook by name.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// List returns all registered hooks.
func (r *Registry) List() []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Hook, len(r.hooks))
	copy(result, r.hooks)
	return result
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, b interface{}) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInit(ctx, b)
		}); err != nil {
			r.logger.Warn("hook OnInit failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("hook OnShutdown failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitInvoiceCreated emits an invoice created event.
func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv *document.Invoice) {
	r.mu.RLock()
	hooks := r.onInvoiceCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInvoiceCreated(ctx, inv)
		}); err != nil {
			r.logger.Warn("hook OnInvoiceCreated failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitInvoiceUpdated emits an invoice updated event.
func (r *Registry) EmitInvoiceUpdated(ctx context.Context, old, updated *document.Invoice) {
	r.mu.RLock()
	hooks := r.onInvoiceUpdated
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInvoiceUpdated(ctx, old, updated)
		}); err != nil {
			r.logger.Warn("hook OnInvoiceUpdated failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitInvoiceDeleted emits an invoice deleted event.
func (r *Registry) EmitInvoiceDeleted(ctx context.Context, invoiceID string) {
	r.mu.RLock()
	hooks := r.onInvoiceDeleted
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInvoiceDeleted(ctx, invoiceID)
		}); err != nil {
			r.logger.Warn("hook OnInvoiceDeleted failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitOrderCreated emits an order created event.
func (r *Registry) EmitOrderCreated(ctx context.Context, ord *document.SalesOrder) {
	r.mu.RLock()
	hooks := r.onOrderCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnOrderCreated(ctx, ord)
		}); err != nil {
			r.logger.Warn("hook OnOrderCreated failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitOrderStatusChanged emits an order status change event.
func (r *Registry) EmitOrderStatusChanged(ctx context.Context, ord *document.SalesOrder, from, to document.OrderStatus) {
	r.mu.RLock()
	hooks := r.onOrderStatusChanged
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnOrderStatusChanged(ctx, ord, from, to)
		}); err != nil {
			r.logger.Warn("hook OnOrderStatusChanged failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitPaymentRecorded emits a payment recorded event.
func (r *Registry) EmitPaymentRecorded(ctx context.Context, p *payment.Payment) {
	r.mu.RLock()
	hooks := r.onPaymentRecorded
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnPaymentRecorded(ctx, p)
		}); err != nil {
			r.logger.Warn("hook OnPaymentRecorded failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitPaymentDeleted emits a payment deleted event.
func (r *Registry) EmitPaymentDeleted(ctx context.Context, p *payment.Payment) {
	r.mu.RLock()
	hooks := r.onPaymentDeleted
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnPaymentDeleted(ctx, p)
		}); err != nil {
			r.logger.Warn("hook OnPaymentDeleted failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitExpenseRecorded emits an expense recorded event.
func (r *Registry) EmitExpenseRecorded(ctx context.Context, e *expense.Expense) {
	r.mu.RLock()
	hooks := r.onExpenseRecorded
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnExpenseRecorded(ctx, e)
		}); err != nil {
			r.logger.Warn("hook OnExpenseRecorded failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitCustomerCreated emits a customer created event.
func (r *Registry) EmitCustomerCreated(ctx context.Context, c *customer.Customer) {
	r.mu.RLock()
	hooks := r.onCustomerCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnCustomerCreated(ctx, c)
		}); err != nil {
			r.logger.Warn("hook OnCustomerCreated failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitStateRestored emits a state restored event.
func (r *Registry) EmitStateRestored(ctx context.Context, reason string) {
	r.mu.RLock()
	hooks := r.onStateRestored
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnStateRestored(ctx, reason)
		}); err != nil {
			r.logger.Warn("hook OnStateRestored failed", "hook", h.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a hook function with a timeout.
// Hooks should never block a bookkeeping operation.
func (r *Registry) callWithTimeout(ctx context.Context, hookName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
