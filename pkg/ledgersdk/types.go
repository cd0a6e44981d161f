package ledgersdk

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of expense dates.
const DateLayout = "2006-01-02"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse represents a standard error response body.
type ErrorResponse struct {
	// Error is the error code (e.g., "invalid_request", "expense_not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse represents a validation error response.
// This is returned with 422 when request validation fails.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is returned by a successful signup.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
}

// ============================================================================
// Expense Types
// ============================================================================

// ExpenseCreateRequest is the body of POST /expenses.
type ExpenseCreateRequest struct {
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Note        *string         `json:"note,omitempty"`
	ExpenseDate string          `json:"expense_date"`
}

// ExpensePatchRequest is the body of PATCH /expenses/{id}. Nil fields are
// left unchanged.
type ExpensePatchRequest struct {
	CategoryName *string          `json:"category_name,omitempty"`
	CurrencyCode *string          `json:"currency_code,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Note         *string          `json:"note,omitempty"`
	ExpenseDate  *string          `json:"expense_date,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatchRequest) IsEmpty() bool {
	return p.CategoryName == nil && p.CurrencyCode == nil && p.Amount == nil &&
		p.Note == nil && p.ExpenseDate == nil
}

// ExpenseResponse is the resolved view of a single expense.
type ExpenseResponse struct {
	ID             int64           `json:"id"`
	CategoryName   string          `json:"category_name"`
	CurrencyCode   string          `json:"currency_code"`
	CurrencySymbol string          `json:"currency_symbol"`
	Amount         decimal.Decimal `json:"amount"`
	Note           *string         `json:"note"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Day            int             `json:"day"`
}

// ListOptions are the pagination query parameters of the list endpoints.
// Zero values mean "server default".
type ListOptions struct {
	Limit  int
	Offset int
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks is only populated by /readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// ReferenceData indicates whether categories and currencies are loaded
	ReferenceData string `json:"reference_data"`
}
