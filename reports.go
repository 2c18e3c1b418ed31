package books

import (
	"context"
	"io"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/report"
)

// ──────────────────────────────────────────────────
// Reporting and Export
// ──────────────────────────────────────────────────

// Summary computes the business dashboard figures from the full set of
// stored records.
func (b *Books) Summary(ctx context.Context) (report.Summary, error) {
	invoices, orders, payments, expenses, err := b.ledgerData(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(invoices, orders, payments, expenses), nil
}

// ExportInvoicesCSV writes all invoices as CSV, with computed totals
// and balances.
func (b *Books) ExportInvoicesCSV(ctx context.Context, w io.Writer) error {
	invoices, _, payments, _, err := b.ledgerData(ctx)
	if err != nil {
		return err
	}
	list, err := b.store.ListCustomers(ctx, customer.ListOpts{})
	if err != nil {
		return err
	}
	customers := make([]customer.Customer, len(list))
	for i := range list {
		customers[i] = *list[i]
	}
	return report.WriteInvoicesCSV(w, invoices, customers, payments)
}

// ExportPaymentsCSV writes all payments as CSV.
func (b *Books) ExportPaymentsCSV(ctx context.Context, w io.Writer) error {
	list, err := b.store.ListPayments(ctx, payment.ListOpts{})
	if err != nil {
		return err
	}
	payments := make([]payment.Payment, len(list))
	for i := range list {
		payments[i] = *list[i]
	}
	return report.WritePaymentsCSV(w, payments)
}

// ExportExpensesCSV writes all expenses as CSV.
func (b *Books) ExportExpensesCSV(ctx context.Context, w io.Writer) error {
	list, err := b.store.ListExpenses(ctx, expense.ListOpts{})
	if err != nil {
		return err
	}
	expenses := make([]expense.Expense, len(list))
	for i := range list {
		expenses[i] = *list[i]
	}
	return report.WriteExpensesCSV(w, expenses)
}

func (b *Books) ledgerData(ctx context.Context) ([]document.Invoice, []document.SalesOrder, []payment.Payment, []expense.Expense, error) {
	invList, err := b.store.ListInvoices(ctx, document.ListOpts{})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ordList, err := b.store.ListOrders(ctx, document.ListOpts{})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	payList, err := b.store.ListPayments(ctx, payment.ListOpts{})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	expList, err := b.store.ListExpenses(ctx, expense.ListOpts{})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	invoices := make([]document.Invoice, len(invList))
	for i := range invList {
		invoices[i] = *invList[i]
	}
	orders := make([]document.SalesOrder, len(ordList))
	for i := range ordList {
		orders[i] = *ordList[i]
	}
	payments := make([]payment.Payment, len(payList))
	for i := range payList {
		payments[i] = *payList[i]
	}
	expenses := make([]expense.Expense, len(expList))
	for i := range expList {
		expenses[i] = *expList[i]
	}
	return invoices, orders, payments, expenses, nil
}
