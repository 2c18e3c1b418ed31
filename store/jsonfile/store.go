// Package jsonfile provides a Store backed by a single JSON document
// on local disk. The full data set is held in memory and the file is
// rewritten atomically after every mutation, so a crash can never
// leave a half-written data file behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/craftbooks/books"
	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/settings"
	"github.com/craftbooks/books/store"
	"github.com/craftbooks/books/store/memory"
)

type Store struct {
	mem  *memory.Store
	path string

	// writeMu orders mutate-then-flush sequences; the in-memory store
	// has its own finer-grained lock for readers.
	writeMu sync.Mutex
}

// Open loads the data file at path, creating an empty store if the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{mem: memory.New(), path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", path, err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", path, err)
	}
	if snap.Version != 0 && snap.Version != store.SnapshotVersion {
		return nil, fmt.Errorf("jsonfile: %s: %w", path, books.ErrBackupVersion)
	}
	if err := s.mem.Restore(context.Background(), &snap); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing data file.
func (s *Store) Path() string { return s.path }

// flush rewrites the data file from the current in-memory state. The
// write goes to a temp file in the same directory and is renamed into
// place so readers never observe a partial file.
func (s *Store) flush(ctx context.Context) error {
	snap, err := s.mem.Dump(ctx)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".books-*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: rename: %w", err)
	}
	return nil
}

// mutate runs fn against the in-memory store and persists on success.
func (s *Store) mutate(ctx context.Context, fn func() error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	return s.flush(ctx)
}

// Invoice methods

func (s *Store) CreateInvoice(ctx context.Context, inv *document.Invoice) error {
	return s.mutate(ctx, func() error { return s.mem.CreateInvoice(ctx, inv) })
}

func (s *Store) GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error) {
	return s.mem.GetInvoice(ctx, invoiceID)
}

func (s *Store) ListInvoices(ctx context.Context, opts document.ListOpts) ([]*document.Invoice, error) {
	return s.mem.ListInvoices(ctx, opts)
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *document.Invoice) error {
	return s.mutate(ctx, func() error { return s.mem.UpdateInvoice(ctx, inv) })
}

func (s *Store) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.mutate(ctx, func() error { return s.mem.DeleteInvoice(ctx, invoiceID) })
}

// Sales order methods

func (s *Store) CreateOrder(ctx context.Context, ord *document.SalesOrder) error {
	return s.mutate(ctx, func() error { return s.mem.CreateOrder(ctx, ord) })
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*document.SalesOrder, error) {
	return s.mem.GetOrder(ctx, orderID)
}

func (s *Store) ListOrders(ctx context.Context, opts document.ListOpts) ([]*document.SalesOrder, error) {
	return s.mem.ListOrders(ctx, opts)
}

func (s *Store) UpdateOrder(ctx context.Context, ord *document.SalesOrder) error {
	return s.mutate(ctx, func() error { return s.mem.UpdateOrder(ctx, ord) })
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	return s.mutate(ctx, func() error { return s.mem.DeleteOrder(ctx, orderID) })
}

// Customer methods

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	return s.mutate(ctx, func() error { return s.mem.CreateCustomer(ctx, c) })
}

func (s *Store) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	return s.mem.GetCustomer(ctx, customerID)
}

func (s *Store) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	return s.mem.ListCustomers(ctx, opts)
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	return s.mutate(ctx, func() error { return s.mem.UpdateCustomer(ctx, c) })
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	return s.mutate(ctx, func() error { return s.mem.DeleteCustomer(ctx, customerID) })
}

// Payment methods

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	return s.mutate(ctx, func() error { return s.mem.CreatePayment(ctx, p) })
}

func (s *Store) GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	return s.mem.GetPayment(ctx, paymentID)
}

func (s *Store) ListPayments(ctx context.Context, opts payment.ListOpts) ([]*payment.Payment, error) {
	return s.mem.ListPayments(ctx, opts)
}

func (s *Store) DeletePayment(ctx context.Context, paymentID id.PaymentID) error {
	return s.mutate(ctx, func() error { return s.mem.DeletePayment(ctx, paymentID) })
}

// Expense methods

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	return s.mutate(ctx, func() error { return s.mem.CreateExpense(ctx, e) })
}

func (s *Store) GetExpense(ctx context.Context, expenseID id.ExpenseID) (*expense.Expense, error) {
	return s.mem.GetExpense(ctx, expenseID)
}

func (s *Store) ListExpenses(ctx context.Context, opts expense.ListOpts) ([]*expense.Expense, error) {
	return s.mem.ListExpenses(ctx, opts)
}

func (s *Store) DeleteExpense(ctx context.Context, expenseID id.ExpenseID) error {
	return s.mutate(ctx, func() error { return s.mem.DeleteExpense(ctx, expenseID) })
}

// Chart of accounts

func (s *Store) ListAccountCodes(ctx context.Context) ([]document.AccountCode, error) {
	return s.mem.ListAccountCodes(ctx)
}

func (s *Store) SaveAccountCodes(ctx context.Context, codes []document.AccountCode) error {
	return s.mutate(ctx, func() error { return s.mem.SaveAccountCodes(ctx, codes) })
}

// Settings

func (s *Store) GetState(ctx context.Context) (*settings.State, error) {
	return s.mem.GetState(ctx)
}

func (s *Store) SaveState(ctx context.Context, st *settings.State) error {
	return s.mutate(ctx, func() error { return s.mem.SaveState(ctx, st) })
}

// Snapshots

func (s *Store) Dump(ctx context.Context) (*store.Snapshot, error) {
	return s.mem.Dump(ctx)
}

func (s *Store) Restore(ctx context.Context, snap *store.Snapshot) error {
	return s.mutate(ctx, func() error { return s.mem.Restore(ctx, snap) })
}

// Core methods

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("jsonfile: %w: %v", books.ErrStoreNotReady, err)
	}
	return nil
}

// Close persists any in-memory state one last time.
func (s *Store) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.flush(context.Background())
}

var _ store.Store = (*Store)(nil)
