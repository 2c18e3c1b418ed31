package expense

import (
	"time"

	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/types"
)

// Expense is money spent by the business, tracked for the profit
// summary and tax planning. Expenses never touch invoice balances.
type Expense struct {
	types.Entity
	ID       id.ExpenseID `json:"id"`
	Category string       `json:"category"`
	Amount   float64      `json:"amount"`
	Date     time.Time    `json:"date"`
	Vendor   string       `json:"vendor"`
	Note     string       `json:"note,omitempty"`
}

// ListOpts filters and pages expense listings.
type ListOpts struct {
	Category string
	Start    time.Time
	End      time.Time
	Limit    int
	Offset   int
}
