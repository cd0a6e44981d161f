package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// ExpenseService is the ownership-scoped expense ledger. Every operation
// takes the id of the owning user and never touches another user's rows.
type ExpenseService struct {
	Store store.Store
	Ref   domain.ReferenceData
}

func NewExpenseService(st store.Store, ref domain.ReferenceData) *ExpenseService {
	return &ExpenseService{Store: st, Ref: ref}
}

// Create records a new expense and returns its resolved view.
func (s *ExpenseService) Create(ctx context.Context, userID string, in domain.NewExpense) (domain.Expense, error) {
	categoryID, ok := s.Ref.CategoryID(in.Category)
	if !ok {
		return domain.Expense{}, ErrCategoryDoesNotExist
	}
	currencyID, ok := s.Ref.CurrencyID(in.Currency)
	if !ok {
		return domain.Expense{}, ErrCurrencyDoesNotExist
	}

	id, err := s.Store.Expenses().CreateExpense(ctx, domain.ExpenseRow{
		UserID:     userID,
		CategoryID: categoryID,
		CurrencyID: currencyID,
		Amount:     in.Amount,
		Note:       in.Note,
		Date:       in.Date,
	})
	if err != nil {
		return domain.Expense{}, err
	}

	slogx.FromContext(ctx).Info("expense created", slog.Int64("expense_id", id))
	return s.Get(ctx, userID, id)
}

// Get returns the expense when it exists and belongs to userID.
func (s *ExpenseService) Get(ctx context.Context, userID string, id int64) (domain.Expense, error) {
	e, err := s.Store.Expenses().GetExpense(ctx, userID, id)
	if err != nil {
		return domain.Expense{}, mapExpenseErr(err)
	}
	return e, nil
}

// List returns the user's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, userID string, page domain.Page) ([]domain.Expense, error) {
	return s.Store.Expenses().ListExpenses(ctx, userID, page)
}

// ListByCategory filters List by exact category name. An unknown name
// simply matches nothing.
func (s *ExpenseService) ListByCategory(
	ctx context.Context,
	userID, category string,
	page domain.Page,
) ([]domain.Expense, error) {
	return s.Store.Expenses().ListExpensesByCategory(ctx, userID, category, page)
}

// Update applies the fields present in patch. References are resolved
// before anything is written, so an unknown category or currency leaves
// the row untouched. An empty patch returns the current record.
func (s *ExpenseService) Update(
	ctx context.Context,
	userID string,
	id int64,
	patch domain.ExpensePatch,
) (domain.Expense, error) {
	changes := domain.ExpenseChanges{
		Amount: patch.Amount,
		Note:   patch.Note,
		Date:   patch.Date,
	}
	if patch.Category != nil {
		categoryID, ok := s.Ref.CategoryID(*patch.Category)
		if !ok {
			return domain.Expense{}, ErrCategoryDoesNotExist
		}
		changes.CategoryID = &categoryID
	}
	if patch.Currency != nil {
		currencyID, ok := s.Ref.CurrencyID(*patch.Currency)
		if !ok {
			return domain.Expense{}, ErrCurrencyDoesNotExist
		}
		changes.CurrencyID = &currencyID
	}

	if err := s.Store.Expenses().UpdateExpense(ctx, userID, id, changes); err != nil {
		return domain.Expense{}, mapExpenseErr(err)
	}
	if !changes.IsEmpty() {
		slogx.FromContext(ctx).Info("expense updated", slog.Int64("expense_id", id))
	}
	return s.Get(ctx, userID, id)
}

// Delete removes the expense when it belongs to userID.
func (s *ExpenseService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.Store.Expenses().DeleteExpense(ctx, userID, id); err != nil {
		return mapExpenseErr(err)
	}
	slogx.FromContext(ctx).Info("expense deleted", slog.Int64("expense_id", id))
	return nil
}

func mapExpenseErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrExpenseDoesNotExist
	}
	return err
}
