package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/shopspring/decimal"
)

type expensesRepo struct {
	db dbtx
}

// expenseSelect resolves references with LEFT JOINs since both foreign keys
// are SET NULL on delete.
const expenseSelect = `
SELECT e.id, e.user_id,
       COALESCE(c.name, ''), COALESCE(cu.code, ''), COALESCE(cu.symbol, ''),
       e.amount, e.note, e.expense_date
  FROM expenses e
  LEFT JOIN categories c ON c.id = e.category_id
  LEFT JOIN currencies cu ON cu.id = e.currency_id`

const expenseOrder = ` ORDER BY e.expense_date DESC, e.id DESC LIMIT ? OFFSET ?`

func (r *expensesRepo) CreateExpense(ctx context.Context, row domain.ExpenseRow) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, category_id, currency_id, amount, note, expense_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.UserID, row.CategoryID, row.CurrencyID, row.Amount.String(),
		mapOptionalString(row.Note), row.Date.Format(dateLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *expensesRepo) GetExpense(ctx context.Context, userID string, id int64) (domain.Expense, error) {
	row := r.db.QueryRowContext(ctx, expenseSelect+` WHERE e.user_id = ? AND e.id = ?`, userID, id)
	return scanExpense(row)
}

func (r *expensesRepo) ListExpenses(ctx context.Context, userID string, page domain.Page) ([]domain.Expense, error) {
	return r.list(ctx, expenseSelect+` WHERE e.user_id = ?`+expenseOrder, userID, page.Limit, page.Offset)
}

func (r *expensesRepo) ListExpensesByCategory(
	ctx context.Context,
	userID, category string,
	page domain.Page,
) ([]domain.Expense, error) {
	return r.list(ctx, expenseSelect+` WHERE e.user_id = ? AND c.name = ?`+expenseOrder,
		userID, category, page.Limit, page.Offset)
}

func (r *expensesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *expensesRepo) UpdateExpense(
	ctx context.Context,
	userID string,
	id int64,
	changes domain.ExpenseChanges,
) error {
	var (
		sets []string
		args []any
	)
	if changes.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *changes.CategoryID)
	}
	if changes.CurrencyID != nil {
		sets = append(sets, "currency_id = ?")
		args = append(args, *changes.CurrencyID)
	}
	if changes.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, changes.Amount.String())
	}
	if changes.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *changes.Note)
	}
	if changes.Date != nil {
		sets = append(sets, "expense_date = ?")
		args = append(args, changes.Date.Format(dateLayout))
	}
	if len(sets) == 0 {
		// Still a single statement so the existence check stays atomic.
		sets = append(sets, "id = id")
	}

	args = append(args, id, userID)
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *expensesRepo) DeleteExpense(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e      domain.Expense
		amount string
		note   sql.NullString
		date   string
	)
	err := s.Scan(&e.ID, &e.UserID, &e.CategoryName, &e.CurrencyCode, &e.CurrencySymbol, &amount, &note, &date)
	if err != nil {
		return domain.Expense{}, mapNotFound(err)
	}

	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return domain.Expense{}, fmt.Errorf("sqlite: expense %d amount %q: %w", e.ID, amount, err)
	}
	if e.Date, err = time.Parse(dateLayout, date); err != nil {
		return domain.Expense{}, fmt.Errorf("sqlite: expense %d date %q: %w", e.ID, date, err)
	}
	e.Note = mapNullStringPtr(note)
	return e, nil
}
