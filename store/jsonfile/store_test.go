package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/craftbooks/books"
	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/store"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, path
}

func TestOpenMissingFile(t *testing.T) {
	s, _ := openTemp(t)
	invs, err := s.ListInvoices(context.Background(), document.ListOpts{})
	if err != nil {
		t.Fatalf("ListInvoices() error = %v", err)
	}
	if len(invs) != 0 {
		t.Errorf("fresh store has %d invoices", len(invs))
	}
}

func TestPersistAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	inv := &document.Invoice{
		ID:      "1001",
		Created: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Items:   []document.LineItem{{Account: "100", Desc: "Labor", Qty: 1, Price: 150}},
		Meta:    document.DefaultMeta(),
	}
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	c := &customer.Customer{ID: id.NewCustomerID(), Name: "Harbor Gallery"}
	if err := s.CreateCustomer(ctx, c); err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	p := &payment.Payment{ID: id.NewPaymentID(), InvoiceID: "1001", Amount: 50}
	if err := s.CreatePayment(ctx, p); err != nil {
		t.Fatalf("CreatePayment() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	got, err := reopened.GetInvoice(ctx, "1001")
	if err != nil {
		t.Fatalf("GetInvoice() after reopen error = %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Price != 150 {
		t.Errorf("reloaded invoice = %+v", got)
	}
	if _, err := reopened.GetCustomer(ctx, c.ID); err != nil {
		t.Errorf("reloaded customer missing: %v", err)
	}
	pays, _ := reopened.ListPayments(ctx, payment.ListOpts{InvoiceID: "1001"})
	if len(pays) != 1 || pays[0].Amount != 50 {
		t.Errorf("reloaded payments = %+v", pays)
	}
}

func TestMutationWritesFile(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	if err := s.CreateInvoice(ctx, &document.Invoice{ID: "1001", Meta: document.DefaultMeta()}); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("data file not written: %v", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("data file not valid JSON: %v", err)
	}
	if snap.Version != store.SnapshotVersion {
		t.Errorf("file version = %d, want %d", snap.Version, store.SnapshotVersion)
	}
	if len(snap.Invoices) != 1 {
		t.Errorf("file holds %d invoices, want 1", len(snap.Invoices))
	}
}

func TestFailedMutationDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	if err := s.CreateInvoice(ctx, &document.Invoice{ID: "1001", Meta: document.DefaultMeta()}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	err = s.CreateInvoice(ctx, &document.Invoice{ID: "1001", Meta: document.DefaultMeta()})
	if !errors.Is(err, books.ErrDuplicateSequence) {
		t.Fatalf("duplicate create error = %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("data file changed after a rejected mutation")
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("Open() on corrupt file succeeded")
	}
}

func TestOpenVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	raw, _ := json.Marshal(store.Snapshot{Version: store.SnapshotVersion + 1})
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, books.ErrBackupVersion) {
		t.Fatalf("Open() error = %v, want ErrBackupVersion", err)
	}
}

func TestNoLeftoverTempFiles(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	for i := 0; i < 5; i++ {
		inv := &document.Invoice{ID: "100" + string(rune('1'+i)), Meta: document.DefaultMeta()}
		if err := s.CreateInvoice(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			t.Errorf("leftover file %q in data dir", e.Name())
		}
	}
}
