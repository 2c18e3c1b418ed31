package books

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("books: not found")
	ErrAlreadyExists = errors.New("books: already exists")
	ErrInvalidInput  = errors.New("books: invalid input")

	// Document errors
	ErrInvoiceNotFound   = errors.New("books: invoice not found")
	ErrOrderNotFound     = errors.New("books: order not found")
	ErrInvalidStatus     = errors.New("books: invalid order status")
	ErrStatusRegression  = errors.New("books: order status cannot move backwards")
	ErrNothingToBill     = errors.New("books: estimate has no billable cost")
	ErrDuplicateSequence = errors.New("books: document number already in use")

	// Customer errors
	ErrCustomerNotFound = errors.New("books: customer not found")
	ErrCustomerInUse    = errors.New("books: customer is referenced by documents")

	// Payment errors
	ErrPaymentNotFound = errors.New("books: payment not found")
	ErrInvalidAmount   = errors.New("books: invalid payment amount")

	// Expense errors
	ErrExpenseNotFound = errors.New("books: expense not found")

	// Settings errors
	ErrUnknownAccountCode = errors.New("books: unknown account code")

	// Undo and backup errors
	ErrNothingToUndo = errors.New("books: nothing to undo")
	ErrBadBackup     = errors.New("books: backup file is not valid")
	ErrBackupVersion = errors.New("books: unsupported backup version")

	// Store errors
	ErrStoreNotReady   = errors.New("books: store not ready")
	ErrStoreClosed     = errors.New("books: store is closed")
	ErrMigrationFailed = errors.New("books: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("books: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvoiceNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrExpenseNotFound)
}

// IsValidation returns true if the error stems from rejected input.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrStatusRegression)
}

// IsRetryable returns true if the error is temporary and the operation
// can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady)
}
