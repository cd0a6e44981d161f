package http

import (
	"errors"
	"mime"
	"net/http"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// writeError maps service errors to responses. Anything unrecognised is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUnauthorized):
		httpx.WriteBearerError(w, ledgersdk.ErrInvalidToken.Description)
	case errors.Is(err, service.ErrInvalidSignup):
		ledgersdk.NewValidationError(map[string]string{"email": "field required", "password": "field required"}).
			WriteError(w)
	case errors.Is(err, service.ErrUserAlreadyExists):
		ledgersdk.ErrUserAlreadyExists.WriteError(w)
	case errors.Is(err, service.ErrUserDoesntExist):
		ledgersdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrWrongCredentials):
		ledgersdk.ErrWrongCredentials.WriteError(w)
	case errors.Is(err, service.ErrCategoryDoesNotExist):
		ledgersdk.ErrCategoryNotSupported.WriteError(w)
	case errors.Is(err, service.ErrCurrencyDoesNotExist):
		ledgersdk.ErrCurrencyNotSupported.WriteError(w)
	case errors.Is(err, service.ErrExpenseDoesNotExist):
		ledgersdk.ErrExpenseNotFound.WriteError(w)
	case errors.Is(err, domain.ErrInvalidPage):
		ledgersdk.NewValidationError(map[string]string{"pagination": err.Error()}).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		ledgersdk.ErrServerError.WriteError(w)
	}
}

// decodeBody reads a JSON body into dst and writes the error response
// itself when it cannot. A missing Content-Type is accepted.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			ledgersdk.ErrUnsupportedContentType.WriteError(w)
			return false
		}
	}

	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		slogx.FromContext(r.Context()).Debug("invalid request body", "err", err)
		ledgersdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

// validate writes a 422 when details is non-empty.
func validate(w http.ResponseWriter, details map[string]string) bool {
	if len(details) > 0 {
		ledgersdk.NewValidationError(details).WriteError(w)
		return false
	}
	return true
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		httpx.WriteBearerError(w, ledgersdk.ErrInvalidToken.Description)
		return "", false
	}
	return userID, true
}
