// Package memory provides an in-memory Store implementation, suitable
// for tests and for running with persistence disabled.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/craftbooks/books"
	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/settings"
	"github.com/craftbooks/books/store"
)

type Store struct {
	mu sync.RWMutex

	// Document storage
	invoices map[string]*document.Invoice
	orders   map[string]*document.SalesOrder

	// Party and transaction storage
	customers map[string]*customer.Customer
	payments  map[string]*payment.Payment
	expenses  map[string]*expense.Expense

	// Chart of accounts and settings
	accountCodes []document.AccountCode
	state        *settings.State
}

func New() *Store {
	return &Store{
		invoices:  make(map[string]*document.Invoice),
		orders:    make(map[string]*document.SalesOrder),
		customers: make(map[string]*customer.Customer),
		payments:  make(map[string]*payment.Payment),
		expenses:  make(map[string]*expense.Expense),
	}
}

// Invoice Store implementation

func (s *Store) CreateInvoice(_ context.Context, inv *document.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; exists {
		return books.ErrDuplicateSequence
	}
	s.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (s *Store) GetInvoice(_ context.Context, invoiceID string) (*document.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[invoiceID]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, books.ErrInvoiceNotFound
}

func (s *Store) ListInvoices(_ context.Context, opts document.ListOpts) ([]*document.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*document.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if opts.CustomerID != "" && inv.CustomerID != opts.CustomerID {
			continue
		}
		result = append(result, cloneInvoice(inv))
	}
	sortInvoices(result)
	return pageSlice(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *document.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; !exists {
		return books.ErrInvoiceNotFound
	}
	s.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, invoiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[invoiceID]; !exists {
		return books.ErrInvoiceNotFound
	}
	delete(s.invoices, invoiceID)
	return nil
}

// Sales order Store implementation

func (s *Store) CreateOrder(_ context.Context, ord *document.SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[ord.ID]; exists {
		return books.ErrDuplicateSequence
	}
	s.orders[ord.ID] = cloneOrder(ord)
	return nil
}

func (s *Store) GetOrder(_ context.Context, orderID string) (*document.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ord, ok := s.orders[orderID]; ok {
		return cloneOrder(ord), nil
	}
	return nil, books.ErrOrderNotFound
}

func (s *Store) ListOrders(_ context.Context, opts document.ListOpts) ([]*document.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*document.SalesOrder, 0, len(s.orders))
	for _, ord := range s.orders {
		if opts.CustomerID != "" && ord.CustomerID != opts.CustomerID {
			continue
		}
		if opts.Status != "" && ord.Status != opts.Status {
			continue
		}
		result = append(result, cloneOrder(ord))
	}
	sortOrders(result)
	return pageSlice(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateOrder(_ context.Context, ord *document.SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[ord.ID]; !exists {
		return books.ErrOrderNotFound
	}
	s.orders[ord.ID] = cloneOrder(ord)
	return nil
}

func (s *Store) DeleteOrder(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[orderID]; !exists {
		return books.ErrOrderNotFound
	}
	delete(s.orders, orderID)
	return nil
}

// Customer Store implementation

func (s *Store) CreateCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[c.ID.String()]; exists {
		return books.ErrAlreadyExists
	}
	cc := *c
	s.customers[c.ID.String()] = &cc
	return nil
}

func (s *Store) GetCustomer(_ context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.customers[customerID.String()]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, books.ErrCustomerNotFound
}

func (s *Store) ListCustomers(_ context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if opts.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(opts.Name)) {
			continue
		}
		cc := *c
		result = append(result, &cc)
	}
	sortCustomers(result)
	return pageSlice(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[c.ID.String()]; !exists {
		return books.ErrCustomerNotFound
	}
	cc := *c
	s.customers[c.ID.String()] = &cc
	return nil
}

func (s *Store) DeleteCustomer(_ context.Context, customerID id.CustomerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customerID.String()]; !exists {
		return books.ErrCustomerNotFound
	}
	delete(s.customers, customerID.String())
	return nil
}

// Payment Store implementation

func (s *Store) CreatePayment(_ context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[p.ID.String()]; exists {
		return books.ErrAlreadyExists
	}
	pp := *p
	s.payments[p.ID.String()] = &pp
	return nil
}

func (s *Store) GetPayment(_ context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.payments[paymentID.String()]; ok {
		pp := *p
		return &pp, nil
	}
	return nil, books.ErrPaymentNotFound
}

func (s *Store) ListPayments(_ context.Context, opts payment.ListOpts) ([]*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if opts.InvoiceID != "" && p.InvoiceID != opts.InvoiceID {
			continue
		}
		if !opts.Start.IsZero() && p.Date.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && p.Date.After(opts.End) {
			continue
		}
		pp := *p
		result = append(result, &pp)
	}
	sortPayments(result)
	return pageSlice(result, opts.Offset, opts.Limit), nil
}

func (s *Store) DeletePayment(_ context.Context, paymentID id.PaymentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[paymentID.String()]; !exists {
		return books.ErrPaymentNotFound
	}
	delete(s.payments, paymentID.String())
	return nil
}

// Expense Store implementation

func (s *Store) CreateExpense(_ context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[e.ID.String()]; exists {
		return books.ErrAlreadyExists
	}
	ee := *e
	s.expenses[e.ID.String()] = &ee
	return nil
}

func (s *Store) GetExpense(_ context.Context, expenseID id.ExpenseID) (*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.expenses[expenseID.String()]; ok {
		ee := *e
		return &ee, nil
	}
	return nil, books.ErrExpenseNotFound
}

func (s *Store) ListExpenses(_ context.Context, opts expense.ListOpts) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*expense.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		if !opts.Start.IsZero() && e.Date.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && e.Date.After(opts.End) {
			continue
		}
		ee := *e
		result = append(result, &ee)
	}
	sortExpenses(result)
	return pageSlice(result, opts.Offset, opts.Limit), nil
}

func (s *Store) DeleteExpense(_ context.Context, expenseID id.ExpenseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[expenseID.String()]; !exists {
		return books.ErrExpenseNotFound
	}
	delete(s.expenses, expenseID.String())
	return nil
}

// Chart of accounts

func (s *Store) ListAccountCodes(_ context.Context) ([]document.AccountCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]document.AccountCode, len(s.accountCodes))
	copy(out, s.accountCodes)
	return out, nil
}

func (s *Store) SaveAccountCodes(_ context.Context, codes []document.AccountCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accountCodes = make([]document.AccountCode, len(codes))
	copy(s.accountCodes, codes)
	return nil
}

// Settings

func (s *Store) GetState(_ context.Context) (*settings.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, books.ErrNotFound
	}
	st := *s.state
	return &st, nil
}

func (s *Store) SaveState(_ context.Context, st *settings.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *st
	s.state = &copied
	return nil
}

// Snapshots

func (s *Store) Dump(_ context.Context) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dumpLocked(), nil
}

func (s *Store) dumpLocked() *store.Snapshot {
	snap := &store.Snapshot{Version: store.SnapshotVersion}
	for _, inv := range s.invoices {
		snap.Invoices = append(snap.Invoices, *cloneInvoice(inv))
	}
	for _, ord := range s.orders {
		snap.Orders = append(snap.Orders, *cloneOrder(ord))
	}
	for _, c := range s.customers {
		snap.Customers = append(snap.Customers, *c)
	}
	for _, p := range s.payments {
		snap.Payments = append(snap.Payments, *p)
	}
	for _, e := range s.expenses {
		snap.Expenses = append(snap.Expenses, *e)
	}
	snap.AccountCodes = make([]document.AccountCode, len(s.accountCodes))
	copy(snap.AccountCodes, s.accountCodes)
	if s.state != nil {
		st := *s.state
		snap.State = &st
	}
	sortSnapshot(snap)
	return snap
}

func (s *Store) Restore(_ context.Context, snap *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(snap)
	return nil
}

func (s *Store) restoreLocked(snap *store.Snapshot) {
	s.invoices = make(map[string]*document.Invoice, len(snap.Invoices))
	for i := range snap.Invoices {
		s.invoices[snap.Invoices[i].ID] = cloneInvoice(&snap.Invoices[i])
	}
	s.orders = make(map[string]*document.SalesOrder, len(snap.Orders))
	for i := range snap.Orders {
		s.orders[snap.Orders[i].ID] = cloneOrder(&snap.Orders[i])
	}
	s.customers = make(map[string]*customer.Customer, len(snap.Customers))
	for i := range snap.Customers {
		c := snap.Customers[i]
		s.customers[c.ID.String()] = &c
	}
	s.payments = make(map[string]*payment.Payment, len(snap.Payments))
	for i := range snap.Payments {
		p := snap.Payments[i]
		s.payments[p.ID.String()] = &p
	}
	s.expenses = make(map[string]*expense.Expense, len(snap.Expenses))
	for i := range snap.Expenses {
		e := snap.Expenses[i]
		s.expenses[e.ID.String()] = &e
	}
	s.accountCodes = make([]document.AccountCode, len(snap.AccountCodes))
	copy(s.accountCodes, snap.AccountCodes)
	if snap.State != nil {
		st := *snap.State
		s.state = &st
	} else {
		s.state = nil
	}
}

// Core methods

func (s *Store) Migrate(_ context.Context) error { return nil }
func (s *Store) Ping(_ context.Context) error    { return nil }
func (s *Store) Close() error                    { return nil }

var _ store.Store = (*Store)(nil)
