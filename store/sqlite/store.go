// Package sqlite provides a Store backed by a local SQLite database
// via the Grove ORM. It suits books that have outgrown the flat data
// file but still live entirely on one machine.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/craftbooks/books"
	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/settings"
	bookstore "github.com/craftbooks/books/store"
)

// compile-time interface check
var _ bookstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("books/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("books/sqlite: %w: %v", books.ErrMigrationFailed, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Invoice Store ====================

func (s *Store) CreateInvoice(ctx context.Context, inv *document.Invoice) error {
	m := toInvoiceModel(inv)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error) {
	m := new(invoiceModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", invoiceID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, books.ErrInvoiceNotFound
		}
		return nil, err
	}
	return fromInvoiceModel(m)
}

func (s *Store) ListInvoices(ctx context.Context, opts document.ListOpts) ([]*document.Invoice, error) {
	var models []invoiceModel
	q := s.sdb.NewSelect(&models)

	if opts.CustomerID != "" {
		q = q.Where("customer_id = ?", opts.CustomerID)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("seq ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*document.Invoice, len(models))
	for i := range models {
		inv, err := fromInvoiceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = inv
	}
	return result, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *document.Invoice) error {
	m := toInvoiceModel(inv)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, invoiceID string) error {
	res, err := s.sdb.NewDelete((*invoiceModel)(nil)).
		Where("id = ?", invoiceID).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrInvoiceNotFound
	}
	return nil
}

// ==================== Sales order Store ====================

func (s *Store) CreateOrder(ctx context.Context, ord *document.SalesOrder) error {
	m := toOrderModel(ord)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*document.SalesOrder, error) {
	m := new(orderModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", orderID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, books.ErrOrderNotFound
		}
		return nil, err
	}
	return fromOrderModel(m)
}

func (s *Store) ListOrders(ctx context.Context, opts document.ListOpts) ([]*document.SalesOrder, error) {
	var models []orderModel
	q := s.sdb.NewSelect(&models)

	if opts.CustomerID != "" {
		q = q.Where("customer_id = ?", opts.CustomerID)
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("seq ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*document.SalesOrder, len(models))
	for i := range models {
		ord, err := fromOrderModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = ord
	}
	return result, nil
}

func (s *Store) UpdateOrder(ctx context.Context, ord *document.SalesOrder) error {
	m := toOrderModel(ord)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrOrderNotFound
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	res, err := s.sdb.NewDelete((*orderModel)(nil)).
		Where("id = ?", orderID).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrOrderNotFound
	}
	return nil
}

// ==================== Customer Store ====================

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	m := new(customerModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", customerID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, books.ErrCustomerNotFound
		}
		return nil, err
	}
	return fromCustomerModel(m)
}

func (s *Store) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	var models []customerModel
	q := s.sdb.NewSelect(&models)

	if opts.Name != "" {
		q = q.Where("name LIKE ?", "%"+opts.Name+"%")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("name ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*customer.Customer, len(models))
	for i := range models {
		c, err := fromCustomerModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrCustomerNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	res, err := s.sdb.NewDelete((*customerModel)(nil)).
		Where("id = ?", customerID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrCustomerNotFound
	}
	return nil
}

// ==================== Payment Store ====================

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	m := toPaymentModel(p)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	m := new(paymentModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", paymentID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, books.ErrPaymentNotFound
		}
		return nil, err
	}
	return fromPaymentModel(m)
}

func (s *Store) ListPayments(ctx context.Context, opts payment.ListOpts) ([]*payment.Payment, error) {
	var models []paymentModel
	q := s.sdb.NewSelect(&models)

	if opts.InvoiceID != "" {
		q = q.Where("invoice_id = ?", opts.InvoiceID)
	}
	if !opts.Start.IsZero() {
		q = q.Where("date >= ?", opts.Start)
	}
	if !opts.End.IsZero() {
		q = q.Where("date <= ?", opts.End)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("date ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*payment.Payment, len(models))
	for i := range models {
		p, err := fromPaymentModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) DeletePayment(ctx context.Context, paymentID id.PaymentID) error {
	res, err := s.sdb.NewDelete((*paymentModel)(nil)).
		Where("id = ?", paymentID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrPaymentNotFound
	}
	return nil
}

// ==================== Expense Store ====================

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	m := toExpenseModel(e)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetExpense(ctx context.Context, expenseID id.ExpenseID) (*expense.Expense, error) {
	m := new(expenseModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", expenseID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, books.ErrExpenseNotFound
		}
		return nil, err
	}
	return fromExpenseModel(m)
}

func (s *Store) ListExpenses(ctx context.Context, opts expense.ListOpts) ([]*expense.Expense, error) {
	var models []expenseModel
	q := s.sdb.NewSelect(&models)

	if opts.Category != "" {
		q = q.Where("category = ?", opts.Category)
	}
	if !opts.Start.IsZero() {
		q = q.Where("date >= ?", opts.Start)
	}
	if !opts.End.IsZero() {
		q = q.Where("date <= ?", opts.End)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("date ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*expense.Expense, len(models))
	for i := range models {
		e, err := fromExpenseModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) DeleteExpense(ctx context.Context, expenseID id.ExpenseID) error {
	res, err := s.sdb.NewDelete((*expenseModel)(nil)).
		Where("id = ?", expenseID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return books.ErrExpenseNotFound
	}
	return nil
}

// ==================== Chart of accounts ====================

func (s *Store) ListAccountCodes(ctx context.Context) ([]document.AccountCode, error) {
	var models []accountCodeModel
	err := s.sdb.NewSelect(&models).
		OrderExpr("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]document.AccountCode, len(models))
	for i := range models {
		result[i] = fromAccountCodeModel(&models[i])
	}
	return result, nil
}

// SaveAccountCodes replaces the whole chart; it is small and edited as
// a unit.
func (s *Store) SaveAccountCodes(ctx context.Context, codes []document.AccountCode) error {
	if _, err := s.sdb.NewDelete((*accountCodeModel)(nil)).
		Where("1 = 1").
		Exec(ctx); err != nil {
		return err
	}
	for i, c := range codes {
		m := toAccountCodeModel(c, i)
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Settings ====================

func (s *Store) GetState(ctx context.Context) (*settings.State, error) {
	m := new(stateModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", 1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, books.ErrNotFound
		}
		return nil, err
	}
	return fromStateModel(m)
}

func (s *Store) SaveState(ctx context.Context, st *settings.State) error {
	m := toStateModel(st)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(id) DO UPDATE").
		Set("settings = EXCLUDED.settings").
		Set("branding = EXCLUDED.branding").
		Set("last_backup = EXCLUDED.last_backup").
		Exec(ctx)
	return err
}

// ==================== Snapshots ====================

func (s *Store) Dump(ctx context.Context) (*bookstore.Snapshot, error) {
	snap := &bookstore.Snapshot{Version: bookstore.SnapshotVersion}

	invoices, err := s.ListInvoices(ctx, document.ListOpts{})
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		snap.Invoices = append(snap.Invoices, *inv)
	}

	orders, err := s.ListOrders(ctx, document.ListOpts{})
	if err != nil {
		return nil, err
	}
	for _, ord := range orders {
		snap.Orders = append(snap.Orders, *ord)
	}

	customers, err := s.ListCustomers(ctx, customer.ListOpts{})
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		snap.Customers = append(snap.Customers, *c)
	}

	payments, err := s.ListPayments(ctx, payment.ListOpts{})
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		snap.Payments = append(snap.Payments, *p)
	}

	expenses, err := s.ListExpenses(ctx, expense.ListOpts{})
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		snap.Expenses = append(snap.Expenses, *e)
	}

	snap.AccountCodes, err = s.ListAccountCodes(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.GetState(ctx)
	if err != nil && !books.IsNotFound(err) {
		return nil, err
	}
	snap.State = st

	return snap, nil
}

// Restore replaces every table's contents with the snapshot.
func (s *Store) Restore(ctx context.Context, snap *bookstore.Snapshot) error {
	for _, model := range []any{
		(*invoiceModel)(nil),
		(*orderModel)(nil),
		(*customerModel)(nil),
		(*paymentModel)(nil),
		(*expenseModel)(nil),
		(*accountCodeModel)(nil),
		(*stateModel)(nil),
	} {
		if _, err := s.sdb.NewDelete(model).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
	}

	for i := range snap.Invoices {
		if err := s.CreateInvoice(ctx, &snap.Invoices[i]); err != nil {
			return err
		}
	}
	for i := range snap.Orders {
		if err := s.CreateOrder(ctx, &snap.Orders[i]); err != nil {
			return err
		}
	}
	for i := range snap.Customers {
		if err := s.CreateCustomer(ctx, &snap.Customers[i]); err != nil {
			return err
		}
	}
	for i := range snap.Payments {
		if err := s.CreatePayment(ctx, &snap.Payments[i]); err != nil {
			return err
		}
	}
	for i := range snap.Expenses {
		if err := s.CreateExpense(ctx, &snap.Expenses[i]); err != nil {
			return err
		}
	}
	if err := s.SaveAccountCodes(ctx, snap.AccountCodes); err != nil {
		return err
	}
	if snap.State != nil {
		if err := s.SaveState(ctx, snap.State); err != nil {
			return err
		}
	}
	return nil
}

// ==================== helpers ====================

func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
