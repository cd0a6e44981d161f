package ledgersdk_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      ledgersdk.SignupRequest
		badField string
	}{
		{"valid", ledgersdk.SignupRequest{Email: "alice@example.com", Password: "Passw0rd!"}, ""},
		{"missing email", ledgersdk.SignupRequest{Password: "Passw0rd!"}, "email"},
		{"display name", ledgersdk.SignupRequest{Email: "Alice <alice@example.com>", Password: "Passw0rd!"}, "email"},
		{"no domain dot", ledgersdk.SignupRequest{Email: "alice@localhost", Password: "Passw0rd!"}, "email"},
		{"not an email", ledgersdk.SignupRequest{Email: "alice", Password: "Passw0rd!"}, "email"},
		{"email too long", ledgersdk.SignupRequest{Email: strings.Repeat("a", 95) + "@x.com", Password: "Passw0rd!"}, "email"},
		{"short password", ledgersdk.SignupRequest{Email: "alice@example.com", Password: "Pa0!"}, "password"},
		{"no upper case", ledgersdk.SignupRequest{Email: "alice@example.com", Password: "passw0rd!"}, "password"},
		{"no digit", ledgersdk.SignupRequest{Email: "alice@example.com", Password: "Password!"}, "password"},
		{"no special", ledgersdk.SignupRequest{Email: "alice@example.com", Password: "Passw0rdd"}, "password"},
		{"unlisted special", ledgersdk.SignupRequest{Email: "alice@example.com", Password: "Passw0rd_"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if tt.badField == "" {
				require.Nil(t, errs)
				return
			}
			require.Len(t, errs, 1)
			require.Contains(t, errs, tt.badField)
		})
	}
}

func TestLoginAndRefreshRequest_Validate(t *testing.T) {
	require.Nil(t, ledgersdk.LoginRequest{Email: "x", Password: "y"}.Validate())
	require.Len(t, ledgersdk.LoginRequest{}.Validate(), 2)

	require.Nil(t, ledgersdk.RefreshRequest{RefreshToken: "t"}.Validate())
	require.Contains(t, ledgersdk.RefreshRequest{RefreshToken: " "}.Validate(), "refresh_token")
}

func TestExpenseCreateRequest_Validate(t *testing.T) {
	valid := func() ledgersdk.ExpenseCreateRequest {
		return ledgersdk.ExpenseCreateRequest{
			Category:    "Travel",
			Currency:    "USD",
			Amount:      decimal.RequireFromString("42.50"),
			ExpenseDate: "2025-03-14",
		}
	}

	tests := []struct {
		name     string
		mutate   func(*ledgersdk.ExpenseCreateRequest)
		badField string
	}{
		{"valid today", func(*ledgersdk.ExpenseCreateRequest) {}, ""},
		{"valid past", func(r *ledgersdk.ExpenseCreateRequest) { r.ExpenseDate = "2020-01-01" }, ""},
		{"tomorrow", func(r *ledgersdk.ExpenseCreateRequest) { r.ExpenseDate = "2025-03-15" }, "expense_date"},
		{"bad date", func(r *ledgersdk.ExpenseCreateRequest) { r.ExpenseDate = "14/03/2025" }, "expense_date"},
		{"missing date", func(r *ledgersdk.ExpenseCreateRequest) { r.ExpenseDate = "" }, "expense_date"},
		{"zero amount", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.NewFromInt(-1) }, "amount"},
		{"largest amount", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.RequireFromString("999999999999.99") }, ""},
		{"smallest amount", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.RequireFromString("0.01") }, ""},
		{"amount too large", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.RequireFromString("1000000000000") }, "amount"},
		{"huge exponent", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.RequireFromString("1e50000000") }, "amount"},
		{"tiny exponent", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.RequireFromString("1e-50000000") }, "amount"},
		{"three decimal places", func(r *ledgersdk.ExpenseCreateRequest) { r.Amount = decimal.RequireFromString("1.005") }, "amount"},
		{"missing category", func(r *ledgersdk.ExpenseCreateRequest) { r.Category = " " }, "category"},
		{"missing currency", func(r *ledgersdk.ExpenseCreateRequest) { r.Currency = "" }, "currency"},
		{"long note", func(r *ledgersdk.ExpenseCreateRequest) { r.Note = strPtr(strings.Repeat("n", 501)) }, "note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			errs := req.Validate(today)
			if tt.badField == "" {
				require.Nil(t, errs)
				return
			}
			require.Contains(t, errs, tt.badField)
		})
	}
}

func TestExpensePatchRequest_Validate(t *testing.T) {
	require.Nil(t, ledgersdk.ExpensePatchRequest{}.Validate(today))
	require.True(t, ledgersdk.ExpensePatchRequest{}.IsEmpty())

	neg := decimal.NewFromInt(-5)
	errs := ledgersdk.ExpensePatchRequest{
		Amount:       &neg,
		ExpenseDate:  strPtr("2999-01-01"),
		CategoryName: strPtr(""),
	}.Validate(today)
	require.Contains(t, errs, "amount")
	require.Contains(t, errs, "expense_date")
	require.Contains(t, errs, "category_name")

	huge := decimal.RequireFromString("1e50000000")
	errs = ledgersdk.ExpensePatchRequest{Amount: &huge}.Validate(today)
	require.Contains(t, errs, "amount")

	// Unknown names pass validation; resolution is the ledger's job.
	require.Nil(t, ledgersdk.ExpensePatchRequest{CategoryName: strPtr("Nope")}.Validate(today))
}

func TestParseExpenseDate(t *testing.T) {
	d, reason := ledgersdk.ParseExpenseDate("2025-03-14", today)
	require.Empty(t, reason)
	require.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), d)

	_, reason = ledgersdk.ParseExpenseDate("2025-02-30", today)
	require.NotEmpty(t, reason)
}
