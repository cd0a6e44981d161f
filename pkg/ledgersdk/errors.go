package ledgersdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/ledger/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeInvalidToken           = "invalid_token"
	ErrorCodeUserAlreadyExists      = "user_already_exists"
	ErrorCodeUserNotFound           = "user_not_found"
	ErrorCodeWrongCredentials       = "wrong_credentials"
	ErrorCodeCategoryNotSupported   = "category_not_supported"
	ErrorCodeCurrencyNotSupported   = "currency_not_supported"
	ErrorCodeExpenseNotFound        = "expense_not_found"
	ErrorCodeValidation             = "validation_error"
	ErrorCodeServerError            = "server_error"
	ErrorCodeRateLimitExceeded      = "rate_limit_exceeded"
	ErrorCodeMethodNotAllowed       = "method_not_allowed"
	ErrorCodeNotFound               = "not_found"
	ErrorCodeUnsupportedContentType = "unsupported_content_type"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body returned by the ledger service. It is used
// both by the server (to write HTTP responses) and by the SDK client (to
// represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable error code (e.g., "expense_not_found")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by code and status, so errors.Is works
// against the predefined values on the client side.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.StatusCode == t.StatusCode
}

// WithStatus returns a copy of e carrying a different status code.
func (e *APIError) WithStatus(code int) *APIError {
	cp := *e
	cp.StatusCode = code
	return &cp
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the body or a parameter is malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidToken is returned when a bearer or refresh token is missing,
	// invalid, expired or revoked.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "could not validate credentials",
	}

	// ErrUserAlreadyExists is returned by signup for a taken email.
	ErrUserAlreadyExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUserAlreadyExists,
		Description: "user with this email already exists",
	}

	// ErrUserNotFound is returned by login for an unknown or inactive user.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "user with this email doesn't exist",
	}

	// ErrWrongCredentials is returned by login when the password is wrong.
	ErrWrongCredentials = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeWrongCredentials,
		Description: "wrong credentials",
	}

	// ErrCategoryNotSupported is returned when a category is not in the
	// reference set. Updates report it with 400 (see WithStatus).
	ErrCategoryNotSupported = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeCategoryNotSupported,
		Description: "category not supported",
	}

	// ErrCurrencyNotSupported is returned when a currency is not in the
	// reference set. Updates report it with 400 (see WithStatus).
	ErrCurrencyNotSupported = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeCurrencyNotSupported,
		Description: "currency not supported",
	}

	// ErrExpenseNotFound is returned when an expense does not exist or
	// belongs to someone else.
	ErrExpenseNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeExpenseNotFound,
		Description: "expense not found",
	}

	// ErrServerError is returned for anything unexpected.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}

	// ErrMethodNotAllowed is returned when the HTTP method is not allowed.
	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeMethodNotAllowed,
		Description: "method not allowed",
	}

	// ErrUnsupportedContentType is returned for non-JSON request bodies.
	ErrUnsupportedContentType = &APIError{
		StatusCode:  http.StatusUnsupportedMediaType,
		Code:        ErrorCodeUnsupportedContentType,
		Description: "content-type must be application/json",
	}
)

// NewAPIError creates a new APIError with the given status code, error code, and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Validation Error
// ============================================================================

// ValidationError carries field-level validation failures. It is written
// as 422 with a ValidationErrorResponse body.
type ValidationError struct {
	Message string
	Details map[string]string
}

// NewValidationError wraps the result of a Validate call.
func NewValidationError(details map[string]string) *ValidationError {
	return &ValidationError{Message: "request validation failed", Details: details}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%d fields)", ErrorCodeValidation, e.Message, len(e.Details))
}

// WriteError writes the validation error as 422.
func (e *ValidationError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Code:    ErrorCodeValidation,
		Message: e.Message,
		Details: e.Details,
	})
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into a typed error: a
// *ValidationError for validation bodies, otherwise an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Try parsing as validation error
	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code == ErrorCodeValidation {
		return &ValidationError{Message: valErr.Message, Details: valErr.Details}
	}

	// Try parsing as standard error
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
