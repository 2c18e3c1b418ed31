package store

import (
	"context"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/settings"
)

// Store is the unified storage interface for all Books entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Invoice methods
	CreateInvoice(ctx context.Context, inv *document.Invoice) error
	GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error)
	ListInvoices(ctx context.Context, opts document.ListOpts) ([]*document.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *document.Invoice) error
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// Sales order methods
	CreateOrder(ctx context.Context, ord *document.SalesOrder) error
	GetOrder(ctx context.Context, orderID string) (*document.SalesOrder, error)
	ListOrders(ctx context.Context, opts document.ListOpts) ([]*document.SalesOrder, error)
	UpdateOrder(ctx context.Context, ord *document.SalesOrder) error
	DeleteOrder(ctx context.Context, orderID string) error

	// Customer methods
	CreateCustomer(ctx context.Context, c *customer.Customer) error
	GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error)
	ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error)
	UpdateCustomer(ctx context.Context, c *customer.Customer) error
	DeleteCustomer(ctx context.Context, customerID id.CustomerID) error

	// Payment methods
	CreatePayment(ctx context.Context, p *payment.Payment) error
	GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error)
	ListPayments(ctx context.Context, opts payment.ListOpts) ([]*payment.Payment, error)
	DeletePayment(ctx context.Context, paymentID id.PaymentID) error

	// Expense methods
	CreateExpense(ctx context.Context, e *expense.Expense) error
	GetExpense(ctx context.Context, expenseID id.ExpenseID) (*expense.Expense, error)
	ListExpenses(ctx context.Context, opts expense.ListOpts) ([]*expense.Expense, error)
	DeleteExpense(ctx context.Context, expenseID id.ExpenseID) error

	// Chart of accounts
	ListAccountCodes(ctx context.Context) ([]document.AccountCode, error)
	SaveAccountCodes(ctx context.Context, codes []document.AccountCode) error

	// Settings and branding
	GetState(ctx context.Context) (*settings.State, error)
	SaveState(ctx context.Context, st *settings.State) error

	// Snapshot methods, used for undo and backup
	Dump(ctx context.Context) (*Snapshot, error)
	Restore(ctx context.Context, snap *Snapshot) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Snapshot is a full copy of every collection in the store, used both
// as the undo unit and as the on-disk backup format. The version field
// guards the backup file format.
type Snapshot struct {
	Version      int                    `json:"version"`
	Customers    []customer.Customer    `json:"customers"`
	Invoices     []document.Invoice     `json:"invoices"`
	Orders       []document.SalesOrder  `json:"orders"`
	Payments     []payment.Payment      `json:"payments"`
	Expenses     []expense.Expense      `json:"expenses"`
	AccountCodes []document.AccountCode `json:"account_codes"`
	State        *settings.State        `json:"state,omitempty"`
}

// SnapshotVersion is the current backup format version.
const SnapshotVersion = 4
