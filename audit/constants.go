package audit

// Action constants for audit events.
const (
	// Invoice actions
	ActionInvoiceCreated = "invoice.created"
	ActionInvoiceUpdated = "invoice.updated"
	ActionInvoiceDeleted = "invoice.deleted"

	// Sales order actions
	ActionOrderCreated       = "order.created"
	ActionOrderStatusChanged = "order.status_changed"

	// Payment actions
	ActionPaymentRecorded = "payment.recorded"
	ActionPaymentDeleted  = "payment.deleted"

	// Expense actions
	ActionExpenseRecorded = "expense.recorded"

	// Customer actions
	ActionCustomerCreated = "customer.created"

	// State actions
	ActionStateRestored = "state.restored"
)

// Resource constants for audit events.
const (
	ResourceInvoice  = "invoice"
	ResourceOrder    = "order"
	ResourcePayment  = "payment"
	ResourceExpense  = "expense"
	ResourceCustomer = "customer"
	ResourceState    = "state"
)

// Category constants for audit events.
const (
	CategoryBilling = "billing"
	CategorySales   = "sales"
	CategoryPayment = "payment"
	CategoryExpense = "expense"
	CategoryParty   = "party"
	CategoryAdmin   = "admin"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
