package books

import (
	"context"
	"strings"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/types"
)

// ──────────────────────────────────────────────────
// Customer Management
// ──────────────────────────────────────────────────

// CreateCustomer stores a new customer. An ID is assigned if the input
// does not carry one.
func (b *Books) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Field: "name", Message: "customer name is required"}
	}
	if c.ID.IsNil() {
		c.ID = id.NewCustomerID()
	}
	c.Entity = types.NewEntity()

	if err := b.withUndo(ctx, func() error {
		return b.store.CreateCustomer(ctx, c)
	}); err != nil {
		return err
	}

	b.hooks.EmitCustomerCreated(ctx, c)
	return nil
}

// GetCustomer retrieves a customer by ID.
func (b *Books) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	return b.store.GetCustomer(ctx, customerID)
}

// ListCustomers lists customers ordered by name.
func (b *Books) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	return b.store.ListCustomers(ctx, opts)
}

// UpdateCustomer replaces a customer's details.
func (b *Books) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Field: "name", Message: "customer name is required"}
	}

	old, err := b.store.GetCustomer(ctx, c.ID)
	if err != nil {
		return err
	}

	c.CreatedAt = old.CreatedAt
	c.Touch()

	return b.withUndo(ctx, func() error {
		return b.store.UpdateCustomer(ctx, c)
	})
}

// DeleteCustomer removes a customer. Invoices that reference the
// customer keep their stored customer ID and fall back to manual
// customer details for display.
func (b *Books) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	return b.withUndo(ctx, func() error {
		return b.store.DeleteCustomer(ctx, customerID)
	})
}
