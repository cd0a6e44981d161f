package ledgersdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateExpense records a new expense.
func (s *Session) CreateExpense(ctx context.Context, req ExpenseCreateRequest) (*ExpenseResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/expenses", req)
	if err != nil {
		return nil, err
	}

	var expense ExpenseResponse
	if err := decodeJSON(resp, &expense, http.StatusCreated); err != nil {
		return nil, err
	}
	return &expense, nil
}

// GetExpense fetches one of the caller's expenses.
func (s *Session) GetExpense(ctx context.Context, id int64) (*ExpenseResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, expensePath(id), nil)
	if err != nil {
		return nil, err
	}

	var expense ExpenseResponse
	if err := decodeJSON(resp, &expense, http.StatusOK); err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpenses returns the caller's expenses, newest first.
func (s *Session) ListExpenses(ctx context.Context, opts ListOptions) ([]ExpenseResponse, error) {
	return s.listExpenses(ctx, "/expenses", opts)
}

// ListExpensesByCategory returns the caller's expenses in one category.
func (s *Session) ListExpensesByCategory(ctx context.Context, category string, opts ListOptions) ([]ExpenseResponse, error) {
	return s.listExpenses(ctx, "/expenses/"+url.PathEscape(category), opts)
}

func (s *Session) listExpenses(ctx context.Context, path string, opts ListOptions) ([]ExpenseResponse, error) {
	q := url.Values{}
	if opts.Limit != 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset != 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var expenses []ExpenseResponse
	if err := decodeJSON(resp, &expenses, http.StatusOK); err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateExpense applies a partial update. The server answers 206.
func (s *Session) UpdateExpense(ctx context.Context, id int64, patch ExpensePatchRequest) (*ExpenseResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, expensePath(id), patch)
	if err != nil {
		return nil, err
	}

	var expense ExpenseResponse
	if err := decodeJSON(resp, &expense, http.StatusPartialContent); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes one of the caller's expenses.
func (s *Session) DeleteExpense(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, expensePath(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func expensePath(id int64) string {
	return "/expenses/" + strconv.FormatInt(id, 10)
}
