package books

import (
	"context"
	"fmt"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/engine"
	"github.com/craftbooks/books/materials"
	"github.com/craftbooks/books/types"
)

// ──────────────────────────────────────────────────
// Sales Order Management
// ──────────────────────────────────────────────────

// CreateOrder numbers and stores a new sales order. Orders carry their
// own sequence, independent of invoice numbering.
func (b *Books) CreateOrder(ctx context.Context, ord *document.SalesOrder) error {
	if ord.Status == "" {
		ord.Status = document.OrderPending
	}
	if !ord.Status.Valid() {
		return ErrInvalidStatus
	}

	b.seqMu.Lock()
	defer b.seqMu.Unlock()

	existing, err := b.store.ListOrders(ctx, document.ListOpts{})
	if err != nil {
		return err
	}
	all := make([]document.SalesOrder, len(existing))
	for i := range existing {
		all[i] = *existing[i]
	}

	seq := engine.NextOrderSeq(all)
	ord.Seq = seq
	ord.ID = fmt.Sprintf("SO-%d", seq)
	ord.Entity = types.NewEntity()
	normalizeMeta(&ord.Meta)
	if ord.Created.IsZero() {
		ord.Created = b.clock()
	}

	if err := b.withUndo(ctx, func() error {
		return b.store.CreateOrder(ctx, ord)
	}); err != nil {
		return err
	}

	b.hooks.EmitOrderCreated(ctx, ord)
	return nil
}

// GetOrder retrieves a sales order by its ID.
func (b *Books) GetOrder(ctx context.Context, orderID string) (*document.SalesOrder, error) {
	return b.store.GetOrder(ctx, orderID)
}

// ListOrders lists sales orders ordered by sequence.
func (b *Books) ListOrders(ctx context.Context, opts document.ListOpts) ([]*document.SalesOrder, error) {
	return b.store.ListOrders(ctx, opts)
}

// UpdateOrder replaces an order's content. The ID, sequence, and
// status are preserved; use SetOrderStatus to move an order through
// its lifecycle.
func (b *Books) UpdateOrder(ctx context.Context, ord *document.SalesOrder) error {
	if ord.ID == "" {
		return ValidationError{Field: "id", Message: "order id is required"}
	}

	old, err := b.store.GetOrder(ctx, ord.ID)
	if err != nil {
		return err
	}

	normalizeMeta(&ord.Meta)
	ord.Seq = old.Seq
	ord.Status = old.Status
	ord.CreatedAt = old.CreatedAt
	ord.Touch()

	return b.withUndo(ctx, func() error {
		return b.store.UpdateOrder(ctx, ord)
	})
}

// DeleteOrder removes a sales order.
func (b *Books) DeleteOrder(ctx context.Context, orderID string) error {
	return b.withUndo(ctx, func() error {
		return b.store.DeleteOrder(ctx, orderID)
	})
}

// SetOrderStatus moves an order forward through its lifecycle. Moving
// backward is rejected; setting the current status again is a no-op.
func (b *Books) SetOrderStatus(ctx context.Context, orderID string, status document.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	ord, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.Status == status {
		return nil
	}
	if !ord.Status.CanTransitionTo(status) {
		return ErrStatusRegression
	}

	from := ord.Status
	ord.Status = status
	ord.Touch()

	if err := b.withUndo(ctx, func() error {
		return b.store.UpdateOrder(ctx, ord)
	}); err != nil {
		return err
	}

	b.hooks.EmitOrderStatusChanged(ctx, ord, from, status)
	return nil
}

// OrderTotals computes the financial breakdown of a sales order.
func (b *Books) OrderTotals(ctx context.Context, orderID string) (engine.Totals, error) {
	ord, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return engine.Totals{}, err
	}
	return engine.DocTotals(ord.Items, ord.Meta, ord.DirectMaterials), nil
}

// AddOrderLine appends a line item to a sales order.
func (b *Books) AddOrderLine(ctx context.Context, orderID string, item document.LineItem) error {
	ord, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	ord.Items = append(ord.Items, item)
	ord.Touch()

	return b.withUndo(ctx, func() error {
		return b.store.UpdateOrder(ctx, ord)
	})
}

// PushMaterialsToOrder appends a consumables line item priced from the
// estimate onto a sales order.
func (b *Books) PushMaterialsToOrder(ctx context.Context, orderID string, est materials.Estimate) error {
	if !est.Billable() {
		return ErrNothingToBill
	}
	return b.AddOrderLine(ctx, orderID, est.LineItem())
}
