package books

import (
	"context"
	"math"

	"github.com/craftbooks/books/expense"
	"github.com/craftbooks/books/id"
	"github.com/craftbooks/books/types"
)

// ──────────────────────────────────────────────────
// Expense Management
// ──────────────────────────────────────────────────

// RecordExpense stores a business expense. The amount must be a
// positive finite number.
func (b *Books) RecordExpense(ctx context.Context, e *expense.Expense) error {
	if e.Amount <= 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return ErrInvalidAmount
	}

	if e.ID.IsNil() {
		e.ID = id.NewExpenseID()
	}
	e.Entity = types.NewEntity()
	if e.Date.IsZero() {
		e.Date = b.clock()
	}

	if err := b.withUndo(ctx, func() error {
		return b.store.CreateExpense(ctx, e)
	}); err != nil {
		return err
	}

	b.hooks.EmitExpenseRecorded(ctx, e)
	return nil
}

// GetExpense retrieves an expense by ID.
func (b *Books) GetExpense(ctx context.Context, expenseID id.ExpenseID) (*expense.Expense, error) {
	return b.store.GetExpense(ctx, expenseID)
}

// ListExpenses lists expenses ordered by date.
func (b *Books) ListExpenses(ctx context.Context, opts expense.ListOpts) ([]*expense.Expense, error) {
	return b.store.ListExpenses(ctx, opts)
}

// DeleteExpense removes an expense.
func (b *Books) DeleteExpense(ctx context.Context, expenseID id.ExpenseID) error {
	if _, err := b.store.GetExpense(ctx, expenseID); err != nil {
		return err
	}
	return b.withUndo(ctx, func() error {
		return b.store.DeleteExpense(ctx, expenseID)
	})
}
