package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewExpense is a validated request to record an expense. Category and
// Currency are the client-facing name and code, resolved by the ledger.
type NewExpense struct {
	Category string
	Currency string
	Amount   decimal.Decimal
	Note     *string
	Date     time.Time
}

// ExpensePatch holds the fields of a partial update. Nil means unchanged.
type ExpensePatch struct {
	Category *string
	Currency *string
	Amount   *decimal.Decimal
	Note     *string
	Date     *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Category == nil && p.Currency == nil && p.Amount == nil && p.Note == nil && p.Date == nil
}

// Expense is the resolved view of a stored expense. CategoryName and the
// currency fields are empty when the referenced row was deleted.
type Expense struct {
	ID             int64
	UserID         string
	CategoryName   string
	CurrencyCode   string
	CurrencySymbol string
	Amount         decimal.Decimal
	Note           *string
	Date           time.Time
}

func (e Expense) Year() int  { return e.Date.Year() }
func (e Expense) Month() int { return int(e.Date.Month()) }
func (e Expense) Day() int   { return e.Date.Day() }

// ExpenseRow is what the store persists for an expense, with references
// already resolved to ids.
type ExpenseRow struct {
	UserID     string
	CategoryID int64
	CurrencyID int64
	Amount     decimal.Decimal
	Note       *string
	Date       time.Time
}

// ExpenseChanges is an ExpensePatch with references resolved to ids.
type ExpenseChanges struct {
	CategoryID *int64
	CurrencyID *int64
	Amount     *decimal.Decimal
	Note       *string
	Date       *time.Time
}

// IsEmpty reports whether no column would change.
func (c ExpenseChanges) IsEmpty() bool {
	return c.CategoryID == nil && c.CurrencyID == nil && c.Amount == nil && c.Note == nil && c.Date == nil
}
