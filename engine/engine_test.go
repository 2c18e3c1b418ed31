package engine

import (
	"math"
	"testing"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/payment"
)

func item(account string, qty, price float64) document.LineItem {
	return document.LineItem{Account: account, Desc: "test", Qty: qty, Price: price}
}

func TestIsDebitCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"100", false},
		{"101", false},
		{"200", false},
		{"201", false},
		{"300", true},
		{"301", true},
		{"303", true},
		{"3000", true},
		{"30", true},
		{"3", false},
		{"", false},
		{"403", false},
	}
	for _, tt := range tests {
		if got := IsDebitCode(tt.code); got != tt.want {
			t.Errorf("IsDebitCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLineItemValue(t *testing.T) {
	tests := []struct {
		name string
		item document.LineItem
		want float64
	}{
		{"credit line", item("100", 2, 50), 100},
		{"debit line negated", item("300", 1, 75), -75},
		{"zero qty", item("100", 0, 50), 0},
		{"nan qty coerced", item("100", math.NaN(), 50), 0},
		{"inf price coerced", item("100", 2, math.Inf(1)), 0},
		{"nan debit coerced", item("301", math.NaN(), math.NaN()), 0},
		{"fractional", item("101", 1.5, 39.5), 59.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineItemValue(tt.item); got != tt.want {
				t.Errorf("LineItemValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocTotals(t *testing.T) {
	pctMeta := func(discount, tax, fee float64) document.DocMeta {
		m := document.DefaultMeta()
		m.DiscountRate = discount
		m.TaxRate = tax
		m.FeeValue = fee
		return m
	}

	tests := []struct {
		name  string
		items []document.LineItem
		meta  document.DocMeta
		dm    float64
		want  Totals
	}{
		{
			name:  "single credit line no adjustments",
			items: []document.LineItem{item("100", 2, 50)},
			meta:  document.DefaultMeta(),
			want:  Totals{Base: 100, Total: 100},
		},
		{
			name:  "percent tax",
			items: []document.LineItem{item("100", 2, 50)},
			meta:  pctMeta(0, 10, 0),
			want:  Totals{Base: 100, Tax: 10, Total: 110},
		},
		{
			name: "debit line excluded from adjustment base",
			items: []document.LineItem{
				item("100", 4, 50),
				item("300", 1, 50),
			},
			meta: pctMeta(0, 10, 0),
			// Tax is 10% of the 200 credit base, not of the 150 net.
			want: Totals{Base: 150, Tax: 20, Total: 170},
		},
		{
			name:  "percent discount then tax then fee chain",
			items: []document.LineItem{item("100", 1, 200)},
			meta:  pctMeta(10, 5, 2),
			// discount 20, taxed base 180, tax 9, fee base 189, fee 3.78
			want: Totals{Base: 200, Discount: 20, Tax: 9, Fee: 3.78, Total: 192.78},
		},
		{
			name:  "flat adjustments",
			items: []document.LineItem{item("100", 1, 100)},
			meta: document.DocMeta{
				DiscountRate: 15, DiscountType: document.RateFlat,
				TaxRate: 5, TaxType: document.RateFlat,
				FeeValue: 2.5, FeeType: document.RateFlat,
			},
			want: Totals{Base: 100, Discount: 15, Tax: 5, Fee: 2.5, Total: 92.5},
		},
		{
			name:  "zero rate yields exactly zero adjustment",
			items: []document.LineItem{item("100", 1, 100)},
			meta:  pctMeta(0, 0, 0),
			want:  Totals{Base: 100, Total: 100},
		},
		{
			name:  "direct materials join both bases",
			items: []document.LineItem{item("100", 1, 100)},
			meta:  pctMeta(0, 10, 0),
			dm:    50,
			want:  Totals{Base: 150, Tax: 15, Total: 165},
		},
		{
			name: "direct materials not negated by debit lines",
			items: []document.LineItem{
				item("300", 1, 100),
			},
			meta: document.DefaultMeta(),
			dm:   40,
			want: Totals{Base: -60, Total: -60},
		},
		{
			name:  "empty document",
			items: nil,
			meta:  document.DefaultMeta(),
			want:  Totals{},
		},
		{
			name:  "nan rate treated as absent",
			items: []document.LineItem{item("100", 1, 100)},
			meta: document.DocMeta{
				DiscountType: document.RatePercent,
				TaxRate:      math.NaN(), TaxType: document.RatePercent,
				FeeType: document.RatePercent,
			},
			want: Totals{Base: 100, Total: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DocTotals(tt.items, tt.meta, tt.dm)
			if got != tt.want {
				t.Errorf("DocTotals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocTotalsIdempotent(t *testing.T) {
	items := []document.LineItem{
		item("101", 3, 39.5),
		item("300", 1, 25),
	}
	meta := document.DefaultMeta()
	meta.TaxRate = 8.25

	first := DocTotals(items, meta, 12.5)
	for i := 0; i < 5; i++ {
		if got := DocTotals(items, meta, 12.5); got != first {
			t.Fatalf("DocTotals not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestInvoiceBalance(t *testing.T) {
	inv := func(id string, items []document.LineItem, meta document.DocMeta, dm float64) *document.Invoice {
		return &document.Invoice{ID: id, Items: items, Meta: meta, DirectMaterials: dm}
	}
	pay := func(invoiceID string, amount float64) payment.Payment {
		return payment.Payment{InvoiceID: invoiceID, Amount: amount}
	}

	taxMeta := document.DefaultMeta()
	taxMeta.TaxRate = 10

	tests := []struct {
		name     string
		inv      *document.Invoice
		payments []payment.Payment
		want     float64
	}{
		{
			name: "no payments owes full total",
			inv:  inv("1001", []document.LineItem{item("100", 2, 50)}, document.DefaultMeta(), 0),
			want: 100,
		},
		{
			name:     "partial payment",
			inv:      inv("1001", []document.LineItem{item("100", 2, 50)}, document.DefaultMeta(), 0),
			payments: []payment.Payment{pay("1001", 40)},
			want:     60,
		},
		{
			name:     "payments to other invoices ignored",
			inv:      inv("1001", []document.LineItem{item("100", 2, 50)}, document.DefaultMeta(), 0),
			payments: []payment.Payment{pay("1002", 100)},
			want:     100,
		},
		{
			name: "debit line offsets like a payment",
			inv: inv("1001", []document.LineItem{
				item("100", 4, 50),
				item("300", 1, 50),
			}, document.DefaultMeta(), 0),
			want: 150,
		},
		{
			name: "debit line plus recorded payment",
			inv: inv("1001", []document.LineItem{
				item("100", 4, 50),
				item("300", 1, 50),
			}, document.DefaultMeta(), 0),
			payments: []payment.Payment{pay("1001", 100)},
			want:     50,
		},
		{
			name:     "overpayment clamps to zero",
			inv:      inv("1001", []document.LineItem{item("100", 1, 80)}, document.DefaultMeta(), 0),
			payments: []payment.Payment{pay("1001", 200)},
			want:     0,
		},
		{
			name: "adjustments computed off credit lines only",
			inv: inv("1001", []document.LineItem{
				item("100", 4, 50),
				item("300", 1, 50),
			}, taxMeta, 0),
			// owed = 200 + 20 tax - 50 debit
			want: 170,
		},
		{
			name: "direct materials included in owed amount",
			inv:  inv("1001", []document.LineItem{item("100", 1, 100)}, document.DefaultMeta(), 25),
			want: 125,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InvoiceBalance(tt.inv, tt.payments); got != tt.want {
				t.Errorf("InvoiceBalance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvoiceStatus(t *testing.T) {
	inv := &document.Invoice{
		ID:    "1001",
		Items: []document.LineItem{item("100", 1, 100)},
		Meta:  document.DefaultMeta(),
	}

	if got := InvoiceStatus(inv, nil); got != document.InvoiceUnpaid {
		t.Errorf("unpaid invoice status = %v, want %v", got, document.InvoiceUnpaid)
	}

	paid := []payment.Payment{{InvoiceID: "1001", Amount: 100}}
	if got := InvoiceStatus(inv, paid); got != document.InvoicePaid {
		t.Errorf("paid invoice status = %v, want %v", got, document.InvoicePaid)
	}
}

func TestNextInvoiceSeq(t *testing.T) {
	tests := []struct {
		name     string
		invoices []document.Invoice
		want     int64
	}{
		{
			name: "empty collection starts at baseline",
			want: 1001,
		},
		{
			name: "increments past highest",
			invoices: []document.Invoice{
				{ID: "1001"}, {ID: "1050"}, {ID: "1010"},
			},
			want: 1051,
		},
		{
			name: "non-numeric ids ignored",
			invoices: []document.Invoice{
				{ID: "1001"}, {ID: "DRAFT-7"}, {ID: ""},
			},
			want: 1002,
		},
		{
			name: "all non-numeric falls back to baseline",
			invoices: []document.Invoice{
				{ID: "legacy-a"}, {ID: "legacy-b"},
			},
			want: 1001,
		},
		{
			name: "ids below baseline do not lower the floor",
			invoices: []document.Invoice{
				{ID: "7"}, {ID: "42"},
			},
			want: 1001,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextInvoiceSeq(tt.invoices); got != tt.want {
				t.Errorf("NextInvoiceSeq() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextOrderSeq(t *testing.T) {
	tests := []struct {
		name   string
		orders []document.SalesOrder
		want   int64
	}{
		{"empty collection starts at one", nil, 1},
		{"increments past highest", []document.SalesOrder{{Seq: 1}, {Seq: 5}, {Seq: 3}}, 6},
		{"zero seq treated as unset", []document.SalesOrder{{Seq: 0}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextOrderSeq(tt.orders); got != tt.want {
				t.Errorf("NextOrderSeq() = %d, want %d", got, tt.want)
			}
		})
	}
}
