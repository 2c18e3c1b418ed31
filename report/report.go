// Package report derives business-overview metrics and profit-and-loss
// figures from the full data set, and exports audit logs as CSV.
package report

import (
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/engine"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/payment"
)

// estimatedTaxRate is the rule-of-thumb share of cash revenue to set
// aside for taxes.
const estimatedTaxRate = 0.1

// Summary is the derived financial overview of the business.
type Summary struct {
	// ReceivedRevenue counts structured payments plus payment value
	// logged as debit line items directly on invoices.
	ReceivedRevenue float64 `json:"received_revenue"`
	// CashRevenue counts structured payments only; it is the
	// cash-basis revenue figure used for profit and loss.
	CashRevenue    float64 `json:"cash_revenue"`
	Outstanding    float64 `json:"outstanding"`
	OpenInvoices   int     `json:"open_invoices"`
	ProjectedSales float64 `json:"projected_sales"`
	OpenOrders     int     `json:"open_orders"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetProfit      float64 `json:"net_profit"`
	// EstimatedTaxSetAside is a 10% rule-of-thumb reserve on cash
	// revenue, not tax advice.
	EstimatedTaxSetAside float64            `json:"estimated_tax_set_aside"`
	ExpensesByCategory   map[string]float64 `json:"expenses_by_category"`
	PaymentCount         int                `json:"payment_count"`
	ExpenseCount         int                `json:"expense_count"`
}

// Summarize computes the overview metrics from the full collections.
func Summarize(invoices []document.Invoice, orders []document.SalesOrder, payments []payment.Payment, expenses []expense.Expense) Summary {
	var s Summary
	s.PaymentCount = len(payments)
	s.ExpenseCount = len(expenses)

	for _, p := range payments {
		s.CashRevenue += p.Amount
	}
	s.ReceivedRevenue = s.CashRevenue
	for _, inv := range invoices {
		for _, item := range inv.Items {
			if engine.IsDebitCode(item.Account) {
				s.ReceivedRevenue += item.Qty * item.Price
			}
		}

		bal := engine.InvoiceBalance(&inv, payments)
		s.Outstanding += bal
		if bal > 0 {
			s.OpenInvoices++
		}
	}

	for _, ord := range orders {
		if ord.Status == document.OrderCompleted {
			continue
		}
		s.ProjectedSales += engine.DocTotals(ord.Items, ord.Meta, ord.DirectMaterials).Total
		s.OpenOrders++
	}

	s.ExpensesByCategory = make(map[string]float64)
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
		s.ExpensesByCategory[e.Category] += e.Amount
	}

	s.NetProfit = s.CashRevenue - s.TotalExpenses
	s.EstimatedTaxSetAside = s.CashRevenue * estimatedTaxRate
	return s
}
