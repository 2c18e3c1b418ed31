// Package books provides single-operator bookkeeping for small craft
// businesses: invoices, sales orders, payments, expenses, and the math
// that ties them together.
//
// Books is designed as a library, not a service. Import it directly
// into your Go application. It provides:
//
//   - Deterministic document totals (discount, tax, fee chain)
//   - Balance reconciliation across payments and debit line items
//   - Gap-free invoice and sales order numbering
//   - Material cost estimation for piece work
//   - Cash-basis dashboard figures and CSV export
//   - Pluggable hooks for audit trails and metrics
//   - Memory, JSON file, and SQLite storage drivers
//
// # Quick Start
//
// Create a books instance with your preferred store:
//
//	import (
//	    "github.com/craftbooks/books"
//	    "github.com/craftbooks/books/store/jsonfile"
//	)
//
//	// Open the data file (created on first use)
//	st, err := jsonfile.Open("books.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create and start the books
//	b := books.New(st)
//	if err := b.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Stop()
//
// # Core Concepts
//
// Invoices carry line items and adjustment rates. Numbers are assigned
// on creation, starting at 1001:
//
//	inv := &document.Invoice{
//	    Items: []document.LineItem{
//	        {Account: "100", Desc: "Panel commission", Qty: 1, Price: 450},
//	    },
//	    Meta: document.DefaultMeta(),
//	}
//	err := b.CreateInvoice(ctx, inv)
//
// Payments reduce an invoice's balance; the balance never reports
// below zero:
//
//	err := b.RecordPayment(ctx, &payment.Payment{
//	    InvoiceID: inv.ID,
//	    Amount:    200,
//	    Method:    "Check",
//	})
//	balance, err := b.InvoiceBalance(ctx, inv.ID)
//
// Material estimates price consumables for stained glass piece work
// and can be pushed onto a document as a line item:
//
//	est := materials.Calculate(12, 10, 40)
//	err := b.PushMaterialsToInvoice(ctx, inv.ID, est)
//
// The dashboard summary and CSV exports cover the whole ledger:
//
//	sum, err := b.Summary(ctx)
//	err = b.ExportInvoicesCSV(ctx, file)
//
// Every mutating operation records an undo point; Undo rolls the books
// back one step:
//
//	err := b.Undo(ctx)
package books
