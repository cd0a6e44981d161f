package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/idx"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// AuthService owns signup, login, logout, refresh and bearer
// authentication. A user holds at most one active refresh token: login and
// refresh revoke everything before saving the new one, in one transaction.
type AuthService struct {
	Store  store.Store
	Users  *UserDirectory
	Tokens *TokenStore
	Issuer *TokenIssuer
	Hasher PasswordHasher
}

// NewAuthService wires the collaborators that share st and secret.
func NewAuthService(st store.Store, issuer *TokenIssuer, hasher PasswordHasher, secret []byte) *AuthService {
	return &AuthService{
		Store:  st,
		Users:  &UserDirectory{Store: st},
		Tokens: &TokenStore{Secret: secret},
		Issuer: issuer,
		Hasher: hasher,
	}
}

// Signup creates an active user. No tokens are issued.
func (s *AuthService) Signup(ctx context.Context, email, password string) (domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, ErrInvalidSignup
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrUserAlreadyExists
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		return s.Users.Create(ctx, tx, user)
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user signed up", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and starts a new session, revoking any
// previous one.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUserDoesntExist
		}
		return domain.TokenPair{}, err
	}
	if !user.IsActive {
		return domain.TokenPair{}, ErrUserDoesntExist
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		l.Info("login rejected", slog.String("user_id", user.ID))
		return domain.TokenPair{}, ErrWrongCredentials
	}

	pair, err := s.startSession(ctx, user, nil)
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return pair, nil
}

// Refresh exchanges the user's current refresh token for a new pair. The
// presented token must be the active record; anything else is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidToken
	}

	user, err := s.Users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidToken
		}
		return domain.TokenPair{}, err
	}
	if !user.IsActive {
		return domain.TokenPair{}, ErrInvalidToken
	}

	// Checked again inside the transaction so two concurrent refreshes of
	// the same token cannot both succeed.
	check := func(tx store.Tx) error {
		record, err := s.Tokens.FindActive(ctx, tx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidToken
			}
			return err
		}
		if !s.Tokens.Matches(record, refreshToken) {
			return ErrInvalidToken
		}
		return nil
	}

	pair, err := s.startSession(ctx, user, check)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			slogx.FromContext(ctx).Info("refresh rejected", slog.String("user_id", user.ID))
		}
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// startSession mints a token pair and then, in one transaction, revokes the
// user's active refresh tokens and saves the new one. Nothing is returned
// unless the transaction commits.
func (s *AuthService) startSession(
	ctx context.Context,
	user domain.User,
	precheck func(tx store.Tx) error,
) (domain.TokenPair, error) {
	access, err := s.Issuer.IssueAccessToken(user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, expiresAt, err := s.Issuer.IssueRefreshToken(user)
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if precheck != nil {
			if err := precheck(tx); err != nil {
				return err
			}
		}
		if _, err := s.Tokens.RevokeAll(ctx, tx, user.ID); err != nil {
			return err
		}
		return s.Tokens.Save(ctx, tx, user.ID, refresh, expiresAt)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    s.Issuer.AccessTTL(),
	}, nil
}

// Logout revokes every active refresh token of userID. Already issued
// access tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	n, err := s.Tokens.RevokeAll(ctx, s.Store, userID)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user logged out", slog.String("user_id", userID), slog.Int64("revoked", n))
	return nil
}

// Authenticate resolves an access token to an active user. It does not
// consult the token store.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (domain.User, error) {
	claims, err := s.Issuer.VerifyAccess(bearer)
	if err != nil {
		return domain.User{}, ErrUnauthorized
	}

	user, err := s.Users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}
	if !user.IsActive {
		return domain.User{}, ErrUnauthorized
	}
	return user, nil
}

// AuthenticateToken adapts Authenticate to httpx.Authenticator. Only
// rejected credentials wrap httpx.ErrUnauthenticated; store failures pass
// through unchanged.
func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (string, error) {
	user, err := s.Authenticate(ctx, token)
	if errors.Is(err, ErrUnauthorized) {
		return "", fmt.Errorf("%w: %w", httpx.ErrUnauthenticated, err)
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
