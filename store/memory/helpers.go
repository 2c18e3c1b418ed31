package memory

import (
	"sort"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/store"
)

// cloneInvoice copies an invoice including its line-item slice so that
// callers can mutate the result without touching stored data.
func cloneInvoice(inv *document.Invoice) *document.Invoice {
	out := *inv
	out.Items = make([]document.LineItem, len(inv.Items))
	copy(out.Items, inv.Items)
	if inv.ManualCustomer != nil {
		mc := *inv.ManualCustomer
		out.ManualCustomer = &mc
	}
	if inv.Meta.LaborRate != nil {
		lr := *inv.Meta.LaborRate
		out.Meta.LaborRate = &lr
	}
	return &out
}

func cloneOrder(ord *document.SalesOrder) *document.SalesOrder {
	out := *ord
	out.Items = make([]document.LineItem, len(ord.Items))
	copy(out.Items, ord.Items)
	if ord.ManualCustomer != nil {
		mc := *ord.ManualCustomer
		out.ManualCustomer = &mc
	}
	if ord.Meta.LaborRate != nil {
		lr := *ord.Meta.LaborRate
		out.Meta.LaborRate = &lr
	}
	return &out
}

// Map iteration order is random; listings sort so results are stable.

func sortInvoices(invs []*document.Invoice) {
	sort.Slice(invs, func(i, j int) bool { return invs[i].ID < invs[j].ID })
}

func sortOrders(ords []*document.SalesOrder) {
	sort.Slice(ords, func(i, j int) bool { return ords[i].Seq < ords[j].Seq })
}

func sortCustomers(cs []*customer.Customer) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
}

func sortPayments(ps []*payment.Payment) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].Date.Equal(ps[j].Date) {
			return ps[i].Date.Before(ps[j].Date)
		}
		return ps[i].ID.String() < ps[j].ID.String()
	})
}

func sortExpenses(es []*expense.Expense) {
	sort.Slice(es, func(i, j int) bool {
		if !es[i].Date.Equal(es[j].Date) {
			return es[i].Date.Before(es[j].Date)
		}
		return es[i].ID.String() < es[j].ID.String()
	})
}

func sortSnapshot(snap *store.Snapshot) {
	sort.Slice(snap.Invoices, func(i, j int) bool { return snap.Invoices[i].ID < snap.Invoices[j].ID })
	sort.Slice(snap.Orders, func(i, j int) bool { return snap.Orders[i].Seq < snap.Orders[j].Seq })
	sort.Slice(snap.Customers, func(i, j int) bool {
		return snap.Customers[i].ID.String() < snap.Customers[j].ID.String()
	})
	sort.Slice(snap.Payments, func(i, j int) bool {
		return snap.Payments[i].ID.String() < snap.Payments[j].ID.String()
	})
	sort.Slice(snap.Expenses, func(i, j int) bool {
		return snap.Expenses[i].ID.String() < snap.Expenses[j].ID.String()
	})
}

func pageSlice[T any](s []T, offset, limit int) []T {
	start := offset
	if start > len(s) {
		start = len(s)
	}
	end := start + limit
	if limit == 0 || end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
