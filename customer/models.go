package customer

import (
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/types"
)

// Customer is a billable party. Only the name is required; contact
// details are optional and used solely for document headers.
type Customer struct {
	types.Entity
	ID      id.CustomerID `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email,omitempty"`
	Phone   string        `json:"phone,omitempty"`
	Address string        `json:"address,omitempty"`
}

// ListOpts filters and pages customer listings.
type ListOpts struct {
	Name   string
	Limit  int
	Offset int
}
