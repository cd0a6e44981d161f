package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// AccountStatus is the operator view of a user.
type AccountStatus struct {
	User           domain.User
	ActiveSessions int
}

// Status looks up email and counts its live refresh tokens.
func (s *AuthService) Status(ctx context.Context, email string) (AccountStatus, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return AccountStatus{}, ErrUserDoesntExist
	}
	if err != nil {
		return AccountStatus{}, err
	}

	n, err := s.Tokens.CountActive(ctx, s.Store, user.ID)
	if err != nil {
		return AccountStatus{}, err
	}
	return AccountStatus{User: user, ActiveSessions: n}, nil
}

// SetActive flips the soft-delete flag of email. Deactivating also revokes
// every session in the same transaction and reports how many; the user's
// access tokens stop authenticating immediately.
func (s *AuthService) SetActive(ctx context.Context, email string, active bool) (int64, error) {
	var revoked int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserDoesntExist
		}
		if err != nil {
			return err
		}

		if err := s.Users.SetActive(ctx, tx, user.ID, active); err != nil {
			return err
		}
		if !active {
			revoked, err = s.Tokens.RevokeAll(ctx, tx, user.ID)
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	slogx.FromContext(ctx).Info("user activity changed",
		slog.String("email", email),
		slog.Bool("active", active),
		slog.Int64("revoked", revoked),
	)
	return revoked, nil
}
