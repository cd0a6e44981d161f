package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// ErrUnauthenticated marks an Authenticator failure caused by the
// credentials themselves. Other errors are reported as server errors.
var ErrUnauthenticated = errors.New("httpx: unauthenticated")

// Authenticator resolves a raw bearer token to the id of the user it
// belongs to. Rejected credentials must wrap ErrUnauthenticated.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (userID string, err error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, token string) (string, error)

func (f AuthenticatorFunc) AuthenticateToken(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				WriteBearerError(w, "missing bearer token")
				return
			}

			userID, err := a.AuthenticateToken(ctx, raw)
			switch {
			case errors.Is(err, ErrUnauthenticated):
				WriteBearerError(w, "could not validate credentials")
				log.Warn("bearer authentication failed", "err", err)
				return
			case err != nil:
				log.Error("bearer authentication errored", "err", err)
				WriteJSON(w, http.StatusInternalServerError, map[string]string{
					"error":             "server_error",
					"error_description": "internal server error",
				})
				return
			}

			// Inject into context for downstream handlers.
			ctx = ContextWithUserID(ctx, userID)
			ctx = slogx.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteBearerError writes an RFC 6750 invalid_token response.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
