package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/cryptox"
	"github.com/aussiebroadwan/ledger/pkg/idx"
)

// TokenStore persists refresh tokens as HMAC fingerprints. Every method
// takes the store to run against, so callers can pass either the root
// store or an open transaction.
type TokenStore struct {
	Secret []byte
	Now    func() time.Time
}

func (s *TokenStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Save records a new refresh token for userID.
func (s *TokenStore) Save(ctx context.Context, db store.Store, userID, token string, expiresAt time.Time) error {
	now := s.now()
	return db.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(s.Secret, token),
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: now,
	})
}

// FindActive returns the newest unrevoked, unexpired record of userID or
// store.ErrNotFound.
func (s *TokenStore) FindActive(ctx context.Context, db store.Store, userID string) (domain.RefreshToken, error) {
	return db.RefreshTokens().GetActiveRefreshToken(ctx, userID, s.now())
}

// RevokeAll revokes every active record of userID. Calling it again is a
// no-op that reports zero.
func (s *TokenStore) RevokeAll(ctx context.Context, db store.Store, userID string) (int64, error) {
	return db.RefreshTokens().RevokeActiveRefreshTokens(ctx, userID, s.now())
}

// CountActive reports how many unrevoked, unexpired records userID holds.
func (s *TokenStore) CountActive(ctx context.Context, db store.Store, userID string) (int, error) {
	return db.RefreshTokens().CountActiveRefreshTokens(ctx, userID, s.now())
}

// Matches compares the presented token against the stored fingerprint in
// constant time.
func (s *TokenStore) Matches(record domain.RefreshToken, token string) bool {
	return cryptox.VerifyFingerprint(s.Secret, token, record.TokenHash)
}
