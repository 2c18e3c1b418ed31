package document

// AccountType classifies an account code.
type AccountType string

const (
	// AccountCredit marks revenue-generating codes (labor, materials, goods).
	AccountCredit AccountType = "credit"
	// AccountDebit marks payment-received codes; their line items reduce
	// the receivable.
	AccountDebit AccountType = "debit"
)

// AccountCode is one entry in the chart of accounts. Rate is an hourly
// or unit rate used by editors to prefill prices; nil when the code has
// no standard rate.
type AccountCode struct {
	Code string      `json:"code"`
	Name string      `json:"name"`
	Rate *float64    `json:"rate"`
	Type AccountType `json:"type"`
}

func rate(v float64) *float64 { return &v }

// DefaultAccountCodes returns the stock chart of accounts. Codes in the
// 300 range are debit (payment) codes; everything else is credit.
func DefaultAccountCodes() []AccountCode {
	return []AccountCode{
		{Code: "100", Name: "General Labor", Rate: rate(28), Type: AccountCredit},
		{Code: "101", Name: "Skilled Labor", Rate: rate(39.5), Type: AccountCredit},
		{Code: "200", Name: "Materials On Hand", Type: AccountCredit},
		{Code: "201", Name: "Ordered Materials", Type: AccountCredit},
		{Code: "300", Name: "Cash Payment", Type: AccountDebit},
		{Code: "301", Name: "Check Payment", Type: AccountDebit},
		{Code: "302", Name: "Debit/Credit Payment", Type: AccountDebit},
		{Code: "303", Name: "Venmo/Paypal Payment", Type: AccountDebit},
	}
}
