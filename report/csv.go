package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/engine"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/payment"
)

const csvDateLayout = "2006-01-02"

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteInvoicesCSV writes the invoice audit log: one row per invoice
// with its computed total and outstanding balance. Customer names are
// resolved from the customer list, falling back to the invoice's
// embedded manual customer.
func WriteInvoicesCSV(w io.Writer, invoices []document.Invoice, customers []customer.Customer, payments []payment.Payment) error {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID.String()] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Date", "Customer", "Total", "Balance"}); err != nil {
		return fmt.Errorf("write invoices csv: %w", err)
	}
	for i := range invoices {
		inv := &invoices[i]
		name := names[inv.CustomerID]
		if name == "" && inv.ManualCustomer != nil {
			name = inv.ManualCustomer.Name
		}
		if name == "" {
			name = "Manual"
		}
		totals := engine.DocTotals(inv.Items, inv.Meta, inv.DirectMaterials)
		row := []string{
			inv.ID,
			inv.Created.Format(csvDateLayout),
			name,
			amount(totals.Total),
			amount(engine.InvoiceBalance(inv, payments)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write invoices csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write invoices csv: %w", err)
	}
	return nil
}

// WritePaymentsCSV writes the payment audit log.
func WritePaymentsCSV(w io.Writer, payments []payment.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Invoice ID", "Date", "Method", "Amount", "Note"}); err != nil {
		return fmt.Errorf("write payments csv: %w", err)
	}
	for _, p := range payments {
		row := []string{
			p.ID.String(),
			p.InvoiceID,
			dateOrEmpty(p.Date),
			p.Method,
			amount(p.Amount),
			p.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write payments csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write payments csv: %w", err)
	}
	return nil
}

// WriteExpensesCSV writes the expense audit log.
func WriteExpensesCSV(w io.Writer, expenses []expense.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Date", "Vendor", "Category", "Amount", "Note"}); err != nil {
		return fmt.Errorf("write expenses csv: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.ID.String(),
			dateOrEmpty(e.Date),
			e.Vendor,
			e.Category,
			amount(e.Amount),
			e.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write expenses csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write expenses csv: %w", err)
	}
	return nil
}

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvDateLayout)
}
