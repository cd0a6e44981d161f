package http

import (
	"net/http"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSignup godoc
//
//	@Summary		Create an account
//	@Description	Registers a user. The password needs 8+ characters with an upper-case letter, a digit and a special character.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ledgersdk.SignupRequest				true	"email and password"
//	@Success		201		{object}	ledgersdk.UserResponse				"created user"
//	@Failure		400		{object}	ledgersdk.ErrorResponse				"malformed body"
//	@Failure		409		{object}	ledgersdk.ErrorResponse				"email already registered"
//	@Failure		422		{object}	ledgersdk.ValidationErrorResponse	"validation failed"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.SignupRequest
	if !decodeBody(w, r, &req) || !validate(w, req.Validate()) {
		return
	}

	user, err := h.AuthService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, ledgersdk.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges credentials for an access token and a refresh token. Any previous session of the user is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ledgersdk.LoginRequest				true	"email and password"
//	@Success		200		{object}	ledgersdk.TokenResponse				"token pair"
//	@Failure		404		{object}	ledgersdk.ErrorResponse				"unknown user"
//	@Failure		422		{object}	ledgersdk.ErrorResponse				"wrong credentials"
//	@Failure		429		{object}	ledgersdk.ErrorResponse				"rate limited"
//	@Header			200		{string}	Cache-Control						"no-store"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.LoginRequest
	if !decodeBody(w, r, &req) || !validate(w, req.Validate()) {
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleRefresh godoc
//
//	@Summary		Rotate the refresh token
//	@Description	Exchanges the current refresh token for a new token pair. The presented token is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ledgersdk.RefreshRequest			true	"refresh token"
//	@Success		200		{object}	ledgersdk.TokenResponse				"token pair"
//	@Failure		401		{object}	ledgersdk.ErrorResponse				"invalid, expired or revoked token"
//	@Failure		422		{object}	ledgersdk.ValidationErrorResponse	"missing token"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.RefreshRequest
	if !decodeBody(w, r, &req) || !validate(w, req.Validate()) {
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the caller's refresh tokens. Idempotent. Access tokens stay valid until they expire.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"logged out"
//	@Failure		401	{object}	ledgersdk.ErrorResponse	"invalid or missing access token"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tokenResponse(pair domain.TokenPair) ledgersdk.TokenResponse {
	return ledgersdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}
