package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/craftbooks/books/customer"
	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/payment"
	"github.com/craftbooks/books/settings"
	"github.com/craftbooks/books/types"
)

// ==================== Invoice models ====================

type invoiceModel struct {
	grove.BaseModel `grove:"table:books_invoices"`

	ID              string          `grove:"id,pk"`
	Seq             int64           `grove:"seq"`
	CustomerID      string          `grove:"customer_id"`
	ManualCustomer  json.RawMessage `grove:"manual_customer,type:jsonb"`
	Created         time.Time       `grove:"created"`
	Due             time.Time       `grove:"due"`
	Items           json.RawMessage `grove:"items,type:jsonb"`
	Meta            json.RawMessage `grove:"meta,type:jsonb"`
	DirectMaterials float64         `grove:"direct_materials"`
	CreatedAt       time.Time       `grove:"created_at"`
	UpdatedAt       time.Time       `grove:"updated_at"`
}

func toInvoiceModel(inv *document.Invoice) *invoiceModel {
	items, _ := json.Marshal(inv.Items) //nolint:errcheck // best-effort
	meta, _ := json.Marshal(inv.Meta)   //nolint:errcheck // best-effort

	var manual json.RawMessage
	if inv.ManualCustomer != nil {
		manual, _ = json.Marshal(inv.ManualCustomer) //nolint:errcheck // best-effort
	}

	return &invoiceModel{
		ID:              inv.ID,
		Seq:             inv.Seq,
		CustomerID:      inv.CustomerID,
		ManualCustomer:  manual,
		Created:         inv.Created,
		Due:             inv.Due,
		Items:           items,
		Meta:            meta,
		DirectMaterials: inv.DirectMaterials,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func fromInvoiceModel(m *invoiceModel) (*document.Invoice, error) {
	var items []document.LineItem
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &items); err != nil {
			return nil, err
		}
	}

	meta := document.DefaultMeta()
	if len(m.Meta) > 0 {
		if err := json.Unmarshal(m.Meta, &meta); err != nil {
			return nil, err
		}
	}

	var manual *customer.Customer
	if len(m.ManualCustomer) > 0 && string(m.ManualCustomer) != "null" {
		manual = new(customer.Customer)
		if err := json.Unmarshal(m.ManualCustomer, manual); err != nil {
			return nil, err
		}
	}

	return &document.Invoice{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:              m.ID,
		Seq:             m.Seq,
		CustomerID:      m.CustomerID,
		ManualCustomer:  manual,
		Created:         m.Created,
		Due:             m.Due,
		Items:           items,
		Meta:            meta,
		DirectMaterials: m.DirectMaterials,
	}, nil
}

// ==================== Sales order models ====================

type orderModel struct {
	grove.BaseModel `grove:"table:books_orders"`

	ID              string          `grove:"id,pk"`
	Seq             int64           `grove:"seq"`
	CustomerID      string          `grove:"customer_id"`
	ManualCustomer  json.RawMessage `grove:"manual_customer,type:jsonb"`
	Status          string          `grove:"status"`
	Created         time.Time       `grove:"created"`
	Items           json.RawMessage `grove:"items,type:jsonb"`
	Meta            json.RawMessage `grove:"meta,type:jsonb"`
	DirectMaterials float64         `grove:"direct_materials"`
	CreatedAt       time.Time       `grove:"created_at"`
	UpdatedAt       time.Time       `grove:"updated_at"`
}

func toOrderModel(ord *document.SalesOrder) *orderModel {
	items, _ := json.Marshal(ord.Items) //nolint:errcheck // best-effort
	meta, _ := json.Marshal(ord.Meta)   //nolint:errcheck // best-effort

	var manual json.RawMessage
	if ord.ManualCustomer != nil {
		manual, _ = json.Marshal(ord.ManualCustomer) //nolint:errcheck // best-effort
	}

	return &orderModel{
		ID:              ord.ID,
		Seq:             ord.Seq,
		CustomerID:      ord.CustomerID,
		ManualCustomer:  manual,
		Status:          string(ord.Status),
		Created:         ord.Created,
		Items:           items,
		Meta:            meta,
		DirectMaterials: ord.DirectMaterials,
		CreatedAt:       ord.CreatedAt,
		UpdatedAt:       ord.UpdatedAt,
	}
}

func fromOrderModel(m *orderModel) (*document.SalesOrder, error) {
	var items []document.LineItem
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &items); err != nil {
			return nil, err
		}
	}

	meta := document.DefaultMeta()
	if len(m.Meta) > 0 {
		if err := json.Unmarshal(m.Meta, &meta); err != nil {
			return nil, err
		}
	}

	var manual *customer.Customer
	if len(m.ManualCustomer) > 0 && string(m.ManualCustomer) != "null" {
		manual = new(customer.Customer)
		if err := json.Unmarshal(m.ManualCustomer, manual); err != nil {
			return nil, err
		}
	}

	return &document.SalesOrder{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:              m.ID,
		Seq:             m.Seq,
		CustomerID:      m.CustomerID,
		ManualCustomer:  manual,
		Status:          document.OrderStatus(m.Status),
		Created:         m.Created,
		Items:           items,
		Meta:            meta,
		DirectMaterials: m.DirectMaterials,
	}, nil
}

// ==================== Customer models ====================

type customerModel struct {
	grove.BaseModel `grove:"table:books_customers"`

	ID        string    `grove:"id,pk"`
	Name      string    `grove:"name"`
	Email     string    `grove:"email"`
	Phone     string    `grove:"phone"`
	Address   string    `grove:"address"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toCustomerModel(c *customer.Customer) *customerModel {
	return &customerModel{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCustomerModel(m *customerModel) (*customer.Customer, error) {
	customerID, err := id.ParseCustomerID(m.ID)
	if err != nil {
		return nil, err
	}
	return &customer.Customer{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:      customerID,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Address: m.Address,
	}, nil
}

// ==================== Payment models ====================

type paymentModel struct {
	grove.BaseModel `grove:"table:books_payments"`

	ID        string    `grove:"id,pk"`
	InvoiceID string    `grove:"invoice_id"`
	Amount    float64   `grove:"amount"`
	Method    string    `grove:"method"`
	Date      time.Time `grove:"date"`
	Note      string    `grove:"note"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toPaymentModel(p *payment.Payment) *paymentModel {
	return &paymentModel{
		ID:        p.ID.String(),
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    p.Method,
		Date:      p.Date,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPaymentModel(m *paymentModel) (*payment.Payment, error) {
	paymentID, err := id.ParsePaymentID(m.ID)
	if err != nil {
		return nil, err
	}
	return &payment.Payment{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        paymentID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		Method:    m.Method,
		Date:      m.Date,
		Note:      m.Note,
	}, nil
}

// ==================== Expense models ====================

type expenseModel struct {
	grove.BaseModel `grove:"table:books_expenses"`

	ID        string    `grove:"id,pk"`
	Category  string    `grove:"category"`
	Amount    float64   `grove:"amount"`
	Date      time.Time `grove:"date"`
	Vendor    string    `grove:"vendor"`
	Note      string    `grove:"note"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toExpenseModel(e *expense.Expense) *expenseModel {
	return &expenseModel{
		ID:        e.ID.String(),
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date,
		Vendor:    e.Vendor,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromExpenseModel(m *expenseModel) (*expense.Expense, error) {
	expenseID, err := id.ParseExpenseID(m.ID)
	if err != nil {
		return nil, err
	}
	return &expense.Expense{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       expenseID,
		Category: m.Category,
		Amount:   m.Amount,
		Date:     m.Date,
		Vendor:   m.Vendor,
		Note:     m.Note,
	}, nil
}

// ==================== Account code models ====================

type accountCodeModel struct {
	grove.BaseModel `grove:"table:books_account_codes"`

	Code     string   `grove:"code,pk"`
	Name     string   `grove:"name"`
	Rate     *float64 `grove:"rate"`
	Type     string   `grove:"type"`
	Position int      `grove:"position"`
}

func toAccountCodeModel(c document.AccountCode, position int) *accountCodeModel {
	return &accountCodeModel{
		Code:     c.Code,
		Name:     c.Name,
		Rate:     c.Rate,
		Type:     string(c.Type),
		Position: position,
	}
}

func fromAccountCodeModel(m *accountCodeModel) document.AccountCode {
	return document.AccountCode{
		Code: m.Code,
		Name: m.Name,
		Rate: m.Rate,
		Type: document.AccountType(m.Type),
	}
}

// ==================== State models ====================

// stateModel is a single-row table; the row always has ID 1.
type stateModel struct {
	grove.BaseModel `grove:"table:books_state"`

	ID         int             `grove:"id,pk"`
	Settings   json.RawMessage `grove:"settings,type:jsonb"`
	Branding   json.RawMessage `grove:"branding,type:jsonb"`
	LastBackup *time.Time      `grove:"last_backup"`
}

func toStateModel(st *settings.State) *stateModel {
	set, _ := json.Marshal(st.Settings) //nolint:errcheck // best-effort
	brand, _ := json.Marshal(st.Branding)

	var lastBackup *time.Time
	if !st.LastBackup.IsZero() {
		lb := st.LastBackup
		lastBackup = &lb
	}

	return &stateModel{
		ID:         1,
		Settings:   set,
		Branding:   brand,
		LastBackup: lastBackup,
	}
}

func fromStateModel(m *stateModel) (*settings.State, error) {
	st := settings.Default()
	if len(m.Settings) > 0 {
		if err := json.Unmarshal(m.Settings, &st.Settings); err != nil {
			return nil, err
		}
	}
	if len(m.Branding) > 0 {
		if err := json.Unmarshal(m.Branding, &st.Branding); err != nil {
			return nil, err
		}
	}
	if m.LastBackup != nil {
		st.LastBackup = *m.LastBackup
	}
	return &st, nil
}
