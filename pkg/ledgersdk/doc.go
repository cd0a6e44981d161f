/*
Package ledgersdk provides the wire types, request validation and a Go
client for the ledger service.

The server uses the same types: handlers decode requests into them, call
Validate, and answer with *APIError or *ValidationError values, so the
client and the server never disagree about a field name or an error code.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (signup, login, refresh, health)
  - Session: authenticated operations with automatic access token refresh

	client := ledgersdk.NewSDKClient("http://localhost:8080")

	_, err := client.Signup(ctx, ledgersdk.SignupRequest{Email: "a@b.co", Password: "Sup3r!secret"})

	session, err := client.AuthenticateWithPassword(ctx, "a@b.co", "Sup3r!secret")

	expense, err := session.CreateExpense(ctx, ledgersdk.ExpenseCreateRequest{
		Category:    "Travel",
		Currency:    "USD",
		Amount:      decimal.RequireFromString("42.50"),
		ExpenseDate: time.Now().Format(ledgersdk.DateLayout),
	})

	err = session.Logout(ctx)

# Errors

Failed calls return *APIError (compare with errors.Is against the
predefined values such as ErrExpenseNotFound) or *ValidationError, whose
Details map names each rejected field.

# Sessions

The server keeps a single active refresh token per user, so logging in
elsewhere invalidates the refresh token held by an older Session. Its
access token keeps working until it expires.
*/
package ledgersdk
