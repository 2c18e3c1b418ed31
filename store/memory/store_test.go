package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/craftbooks/books"
	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/settings"
)

func testInvoice(invoiceID string) *document.Invoice {
	return &document.Invoice{
		ID:      invoiceID,
		Created: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Items: []document.LineItem{
			{Account: "100", Desc: "Labor", Qty: 2, Price: 28},
		},
		Meta: document.DefaultMeta(),
	}
}

func TestInvoiceCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	inv := testInvoice("1001")
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if err := s.CreateInvoice(ctx, testInvoice("1001")); !errors.Is(err, books.ErrDuplicateSequence) {
		t.Errorf("duplicate CreateInvoice() error = %v, want ErrDuplicateSequence", err)
	}

	got, err := s.GetInvoice(ctx, "1001")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if got.ID != "1001" || len(got.Items) != 1 {
		t.Errorf("GetInvoice() = %+v", got)
	}

	// mutating the returned copy must not affect the stored record
	got.Items[0].Price = 9999
	again, _ := s.GetInvoice(ctx, "1001")
	if again.Items[0].Price != 28 {
		t.Error("stored invoice mutated through returned copy")
	}

	got.Items[0].Price = 35
	if err := s.UpdateInvoice(ctx, got); err != nil {
		t.Fatalf("UpdateInvoice() error = %v", err)
	}
	updated, _ := s.GetInvoice(ctx, "1001")
	if updated.Items[0].Price != 35 {
		t.Errorf("updated price = %v, want 35", updated.Items[0].Price)
	}

	if err := s.DeleteInvoice(ctx, "1001"); err != nil {
		t.Fatalf("DeleteInvoice() error = %v", err)
	}
	if _, err := s.GetInvoice(ctx, "1001"); !errors.Is(err, books.ErrInvoiceNotFound) {
		t.Errorf("GetInvoice() after delete error = %v, want ErrInvoiceNotFound", err)
	}
	if err := s.DeleteInvoice(ctx, "1001"); !books.IsNotFound(err) {
		t.Errorf("double delete error = %v, want not-found", err)
	}
}

func TestListInvoicesOrderedAndPaged(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, invoiceID := range []string{"1003", "1001", "1002"} {
		if err := s.CreateInvoice(ctx, testInvoice(invoiceID)); err != nil {
			t.Fatalf("CreateInvoice(%s) error = %v", invoiceID, err)
		}
	}

	all, err := s.ListInvoices(ctx, document.ListOpts{})
	if err != nil {
		t.Fatalf("ListInvoices() error = %v", err)
	}
	if len(all) != 3 || all[0].ID != "1001" || all[2].ID != "1003" {
		t.Errorf("ListInvoices() order wrong: %v, %v, %v", all[0].ID, all[1].ID, all[2].ID)
	}

	page, err := s.ListInvoices(ctx, document.ListOpts{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("ListInvoices(paged) error = %v", err)
	}
	if len(page) != 1 || page[0].ID != "1002" {
		t.Errorf("paged ListInvoices() = %+v", page)
	}
}

func TestOrderCRUDAndStatusFilter(t *testing.T) {
	ctx := context.Background()
	s := New()

	orders := []*document.SalesOrder{
		{ID: "SO-1", Seq: 1, Status: document.OrderPending, Meta: document.DefaultMeta()},
		{ID: "SO-2", Seq: 2, Status: document.OrderCompleted, Meta: document.DefaultMeta()},
	}
	for _, ord := range orders {
		if err := s.CreateOrder(ctx, ord); err != nil {
			t.Fatalf("CreateOrder(%s) error = %v", ord.ID, err)
		}
	}

	open, err := s.ListOrders(ctx, document.ListOpts{Status: document.OrderPending})
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(open) != 1 || open[0].ID != "SO-1" {
		t.Errorf("status filter returned %+v", open)
	}

	got, err := s.GetOrder(ctx, "SO-2")
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	got.Status = document.OrderCompleted
	if err := s.UpdateOrder(ctx, got); err != nil {
		t.Fatalf("UpdateOrder() error = %v", err)
	}
	if _, err := s.GetOrder(ctx, "SO-9"); !errors.Is(err, books.ErrOrderNotFound) {
		t.Errorf("GetOrder(missing) error = %v, want ErrOrderNotFound", err)
	}
}

func TestCustomerCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	c := &customer.Customer{ID: id.NewCustomerID(), Name: "Harbor Gallery", Email: "art@harbor.example"}
	if err := s.CreateCustomer(ctx, c); err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	got, err := s.GetCustomer(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}
	if got.Name != "Harbor Gallery" {
		t.Errorf("Name = %q", got.Name)
	}

	byName, err := s.ListCustomers(ctx, customer.ListOpts{Name: "harbor"})
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(byName) != 1 {
		t.Errorf("name filter matched %d customers, want 1", len(byName))
	}
	none, _ := s.ListCustomers(ctx, customer.ListOpts{Name: "nope"})
	if len(none) != 0 {
		t.Errorf("name filter matched %d customers, want 0", len(none))
	}

	if err := s.DeleteCustomer(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCustomer() error = %v", err)
	}
	if _, err := s.GetCustomer(ctx, c.ID); !errors.Is(err, books.ErrCustomerNotFound) {
		t.Errorf("GetCustomer(deleted) error = %v, want ErrCustomerNotFound", err)
	}
}

func TestPaymentFiltering(t *testing.T) {
	ctx := context.Background()
	s := New()

	mk := func(invoiceID string, day int, amount float64) *payment.Payment {
		return &payment.Payment{
			ID:        id.NewPaymentID(),
			InvoiceID: invoiceID,
			Amount:    amount,
			Date:      time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC),
		}
	}
	for _, p := range []*payment.Payment{mk("1001", 1, 50), mk("1001", 10, 25), mk("1002", 5, 75)} {
		if err := s.CreatePayment(ctx, p); err != nil {
			t.Fatalf("CreatePayment() error = %v", err)
		}
	}

	forInvoice, err := s.ListPayments(ctx, payment.ListOpts{InvoiceID: "1001"})
	if err != nil {
		t.Fatalf("ListPayments() error = %v", err)
	}
	if len(forInvoice) != 2 {
		t.Errorf("invoice filter matched %d payments, want 2", len(forInvoice))
	}
	if forInvoice[0].Date.After(forInvoice[1].Date) {
		t.Error("payments not sorted by date")
	}

	ranged, err := s.ListPayments(ctx, payment.ListOpts{
		Start: time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("ListPayments(range) error = %v", err)
	}
	if len(ranged) != 1 || ranged[0].Amount != 75 {
		t.Errorf("date range matched %+v", ranged)
	}
}

func TestExpenseFiltering(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, e := range []*expense.Expense{
		{ID: id.NewExpenseID(), Category: "Glass", Amount: 100, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: id.NewExpenseID(), Category: "Utilities", Amount: 60, Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
	} {
		if err := s.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense() error = %v", err)
		}
	}

	glass, err := s.ListExpenses(ctx, expense.ListOpts{Category: "Glass"})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(glass) != 1 || glass[0].Amount != 100 {
		t.Errorf("category filter matched %+v", glass)
	}
}

func TestAccountCodesAndState(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetState(ctx); !books.IsNotFound(err) {
		t.Errorf("GetState() on empty store error = %v, want not-found", err)
	}

	codes := document.DefaultAccountCodes()
	if err := s.SaveAccountCodes(ctx, codes); err != nil {
		t.Fatalf("SaveAccountCodes() error = %v", err)
	}
	got, err := s.ListAccountCodes(ctx)
	if err != nil {
		t.Fatalf("ListAccountCodes() error = %v", err)
	}
	if len(got) != len(codes) {
		t.Errorf("ListAccountCodes() returned %d codes, want %d", len(got), len(codes))
	}

	st := settings.Default()
	st.Settings.Currency = "EUR"
	if err := s.SaveState(ctx, &st); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	loaded, err := s.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if loaded.Settings.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", loaded.Settings.Currency)
	}
}

func TestDumpRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.CreateInvoice(ctx, testInvoice("1001")); err != nil {
		t.Fatal(err)
	}
	c := &customer.Customer{ID: id.NewCustomerID(), Name: "Harbor Gallery"}
	if err := s.CreateCustomer(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveAccountCodes(ctx, document.DefaultAccountCodes()); err != nil {
		t.Fatal(err)
	}
	st := settings.Default()
	if err := s.SaveState(ctx, &st); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Dump(ctx)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// further writes must not leak into the snapshot
	if err := s.CreateInvoice(ctx, testInvoice("1002")); err != nil {
		t.Fatal(err)
	}
	if len(snap.Invoices) != 1 {
		t.Fatalf("snapshot grew after Dump: %d invoices", len(snap.Invoices))
	}

	fresh := New()
	if err := fresh.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if _, err := fresh.GetInvoice(ctx, "1001"); err != nil {
		t.Errorf("restored invoice missing: %v", err)
	}
	if _, err := fresh.GetInvoice(ctx, "1002"); !books.IsNotFound(err) {
		t.Errorf("invoice 1002 should not exist after restore, got err = %v", err)
	}
	if _, err := fresh.GetCustomer(ctx, c.ID); err != nil {
		t.Errorf("restored customer missing: %v", err)
	}
	loaded, err := fresh.GetState(ctx)
	if err != nil || loaded.Settings.Currency != "USD" {
		t.Errorf("restored state = %+v, err = %v", loaded, err)
	}
}
