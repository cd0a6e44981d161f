package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createExpense(t *testing.T, srv *testServer, token string, body map[string]any) ledgersdk.ExpenseResponse {
	t.Helper()

	resp, raw := srv.do(t, http.MethodPost, "/expenses", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var e ledgersdk.ExpenseResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestCreateExpense(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, "spender@example.com").AccessToken

	e := createExpense(t, srv, token, map[string]any{
		"category":     "Travel",
		"currency":     "USD",
		"amount":       42.50,
		"expense_date": today(),
	})
	now := time.Now().UTC()
	require.Equal(t, "Travel", e.CategoryName)
	require.Equal(t, "USD", e.CurrencyCode)
	require.Equal(t, "$", e.CurrencySymbol)
	require.True(t, decimal.RequireFromString("42.5").Equal(e.Amount))
	require.Nil(t, e.Note)
	require.Equal(t, now.Year(), e.Year)
	require.Equal(t, int(now.Month()), e.Month)
	require.Equal(t, now.Day(), e.Day)

	tomorrow := now.AddDate(0, 0, 1).Format(ledgersdk.DateLayout)
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{"unknown category", map[string]any{"category": "Yachts", "currency": "USD", "amount": "1", "expense_date": today()},
			http.StatusUnprocessableEntity, ledgersdk.ErrorCodeCategoryNotSupported},
		{"unknown currency", map[string]any{"category": "Travel", "currency": "XYZ", "amount": "1", "expense_date": today()},
			http.StatusUnprocessableEntity, ledgersdk.ErrorCodeCurrencyNotSupported},
		{"future date", map[string]any{"category": "Travel", "currency": "USD", "amount": "1", "expense_date": tomorrow},
			http.StatusUnprocessableEntity, ""},
		{"zero amount", map[string]any{"category": "Travel", "currency": "USD", "amount": "0", "expense_date": today()},
			http.StatusUnprocessableEntity, ""},
		{"huge exponent amount", map[string]any{"category": "Travel", "currency": "USD", "amount": "1e50000000", "expense_date": today()},
			http.StatusUnprocessableEntity, ""},
		{"missing fields", map[string]any{}, http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := srv.do(t, http.MethodPost, "/expenses", token, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			if tt.wantCode != "" {
				require.Equal(t, tt.wantCode, errorCode(t, raw))
			}
		})
	}

	t.Run("requires a bearer token", func(t *testing.T) {
		resp, _ := srv.do(t, http.MethodPost, "/expenses", "", map[string]any{})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListExpensesPagination(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, "pager@example.com").AccessToken

	for i := 0; i < 3; i++ {
		createExpense(t, srv, token, map[string]any{
			"category":     "Shopping",
			"currency":     "EUR",
			"amount":       fmt.Sprintf("%d.99", i+1),
			"expense_date": time.Now().UTC().AddDate(0, 0, -i).Format(ledgersdk.DateLayout),
		})
	}

	tests := []struct {
		query      string
		wantStatus int
		wantLen    int
	}{
		{"", http.StatusOK, 3},
		{"?limit=2", http.StatusOK, 2},
		{"?limit=2&offset=2", http.StatusOK, 1},
		{"?limit=50&offset=50", http.StatusOK, 0},
		{"?limit=0", http.StatusUnprocessableEntity, 0},
		{"?limit=51", http.StatusUnprocessableEntity, 0},
		{"?offset=51", http.StatusUnprocessableEntity, 0},
		{"?limit=abc", http.StatusUnprocessableEntity, 0},
	}
	for _, tt := range tests {
		t.Run("query "+tt.query, func(t *testing.T) {
			resp, raw := srv.do(t, http.MethodGet, "/expenses"+tt.query, token, nil)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			if tt.wantStatus != http.StatusOK {
				return
			}
			var list []ledgersdk.ExpenseResponse
			require.NoError(t, json.Unmarshal(raw, &list))
			require.Len(t, list, tt.wantLen)
		})
	}
}

func TestExpenseRefRouting(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, "router@example.com").AccessToken

	travel := createExpense(t, srv, token, map[string]any{
		"category": "Travel", "currency": "USD", "amount": "10", "expense_date": today(),
	})
	createExpense(t, srv, token, map[string]any{
		"category": "Food & Groceries", "currency": "USD", "amount": "5", "expense_date": today(),
	})

	resp, raw := srv.do(t, http.MethodGet, fmt.Sprintf("/expenses/%d", travel.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var one ledgersdk.ExpenseResponse
	require.NoError(t, json.Unmarshal(raw, &one))
	require.Equal(t, travel.ID, one.ID)

	resp, raw = srv.do(t, http.MethodGet, "/expenses/Food%20&%20Groceries", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []ledgersdk.ExpenseResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Food & Groceries", list[0].CategoryName)

	resp, raw = srv.do(t, http.MethodGet, "/expenses/999999", token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, ledgersdk.ErrorCodeExpenseNotFound, errorCode(t, raw))
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.login(t, "alice@example.com").AccessToken
	bob := srv.login(t, "bob@example.com").AccessToken

	e := createExpense(t, srv, alice, map[string]any{
		"category": "Health", "currency": "PLN", "amount": "80", "note": "dentist", "expense_date": today(),
	})
	path := fmt.Sprintf("/expenses/%d", e.ID)

	t.Run("unknown category is a bad request and changes nothing", func(t *testing.T) {
		resp, raw := srv.do(t, http.MethodPatch, path, alice, map[string]any{"category_name": "Yachts", "amount": "1"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, ledgersdk.ErrorCodeCategoryNotSupported, errorCode(t, raw))

		resp, raw = srv.do(t, http.MethodGet, path, alice, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got ledgersdk.ExpenseResponse
		require.NoError(t, json.Unmarshal(raw, &got))
		require.True(t, e.Amount.Equal(got.Amount))
		require.Equal(t, "Health", got.CategoryName)
	})

	t.Run("unknown currency is a bad request", func(t *testing.T) {
		resp, raw := srv.do(t, http.MethodPatch, path, alice, map[string]any{"currency_code": "XYZ"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, ledgersdk.ErrorCodeCurrencyNotSupported, errorCode(t, raw))
	})

	t.Run("other users cannot touch it", func(t *testing.T) {
		resp, _ := srv.do(t, http.MethodGet, path, bob, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp, _ = srv.do(t, http.MethodPatch, path, bob, map[string]any{"amount": "1"})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp, _ = srv.do(t, http.MethodDelete, path, bob, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("partial update", func(t *testing.T) {
		resp, raw := srv.do(t, http.MethodPatch, path, alice, map[string]any{"amount": "95.10", "currency_code": "CHF"})
		require.Equal(t, http.StatusPartialContent, resp.StatusCode, string(raw))

		var got ledgersdk.ExpenseResponse
		require.NoError(t, json.Unmarshal(raw, &got))
		require.True(t, decimal.RequireFromString("95.1").Equal(got.Amount))
		require.Equal(t, "CHF", got.CurrencyCode)
		require.Equal(t, "Fr", got.CurrencySymbol)
		require.Equal(t, "Health", got.CategoryName)
		require.Equal(t, "dentist", *got.Note)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp, _ := srv.do(t, http.MethodDelete, "/expenses/abc", alice, nil)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp, _ := srv.do(t, http.MethodDelete, path, alice, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp, _ = srv.do(t, http.MethodDelete, path, alice, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSDKRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	client := ledgersdk.NewSDKClient(srv.URL)
	ctx := t.Context()

	_, err := client.Signup(ctx, ledgersdk.SignupRequest{Email: "sdk@example.com", Password: testPassword})
	require.NoError(t, err)

	_, err = client.Signup(ctx, ledgersdk.SignupRequest{Email: "sdk@example.com", Password: testPassword})
	require.ErrorIs(t, err, ledgersdk.ErrUserAlreadyExists)

	session, err := client.AuthenticateWithPassword(ctx, "sdk@example.com", testPassword)
	require.NoError(t, err)

	note := "train"
	created, err := session.CreateExpense(ctx, ledgersdk.ExpenseCreateRequest{
		Category:    "Transportation",
		Currency:    "GBP",
		Amount:      decimal.RequireFromString("12.40"),
		Note:        &note,
		ExpenseDate: today(),
	})
	require.NoError(t, err)
	require.Equal(t, "£", created.CurrencySymbol)

	list, err := session.ListExpensesByCategory(ctx, "Transportation", ledgersdk.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = session.UpdateExpense(ctx, created.ID, ledgersdk.ExpensePatchRequest{CategoryName: &note})
	var apiErr *ledgersdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, session.DeleteExpense(ctx, created.ID))
	_, err = session.GetExpense(ctx, created.ID)
	require.ErrorIs(t, err, ledgersdk.ErrExpenseNotFound)

	require.NoError(t, session.Logout(ctx))
}
