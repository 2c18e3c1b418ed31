package hook

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/payment"
)

type recordingHook struct {
	name     string
	invoices int32
	payments int32
	statuses int32
	fail     bool
}

func (h *recordingHook) Name() string { return h.name }

func (h *recordingHook) OnInvoiceCreated(_ context.Context, _ *document.Invoice) error {
	atomic.AddInt32(&h.invoices, 1)
	if h.fail {
		return errors.New("boom")
	}
	return nil
}

func (h *recordingHook) OnPaymentRecorded(_ context.Context, _ *payment.Payment) error {
	atomic.AddInt32(&h.payments, 1)
	return nil
}

func (h *recordingHook) OnOrderStatusChanged(_ context.Context, _ *document.SalesOrder, _, _ document.OrderStatus) error {
	atomic.AddInt32(&h.statuses, 1)
	return nil
}

func TestRegisterAndDispatch(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	h := &recordingHook{name: "recording"}
	if err := r.Register(h); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
	if r.Get("recording") == nil {
		t.Error("Get() did not find registered hook")
	}

	r.EmitInvoiceCreated(ctx, &document.Invoice{ID: "1001"})
	r.EmitInvoiceCreated(ctx, &document.Invoice{ID: "1002"})
	r.EmitPaymentRecorded(ctx, &payment.Payment{})
	r.EmitOrderStatusChanged(ctx, &document.SalesOrder{}, document.OrderPending, document.OrderConfirmed)
	// not implemented by the hook; must be a no-op
	r.EmitCustomerCreated(ctx, nil)

	if h.invoices != 2 || h.payments != 1 || h.statuses != 1 {
		t.Errorf("dispatch counts = %d/%d/%d", h.invoices, h.payments, h.statuses)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&recordingHook{name: "dup"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(&recordingHook{name: "dup"}); err == nil {
		t.Error("duplicate Register() succeeded")
	}
}

func TestFailingHookDoesNotStopDispatch(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	bad := &recordingHook{name: "bad", fail: true}
	good := &recordingHook{name: "good"}
	if err := r.Register(bad); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(good); err != nil {
		t.Fatal(err)
	}

	r.EmitInvoiceCreated(ctx, &document.Invoice{ID: "1001"})

	if bad.invoices != 1 || good.invoices != 1 {
		t.Errorf("dispatch counts = %d/%d, want 1/1", bad.invoices, good.invoices)
	}
}
