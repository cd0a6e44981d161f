package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer(testSecret, "ledger-test", 0, 0)
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, issuer.AccessTTL())

	user := domain.User{ID: "01HZX3J7N8Q2V5W6Y7Z8A9B0C1"}

	t.Run("access round trip", func(t *testing.T) {
		tok, err := issuer.IssueAccessToken(user)
		require.NoError(t, err)

		claims, err := issuer.VerifyAccess(tok)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, jwtx.UseAccess, claims.TokenUse)
	})

	t.Run("refresh expiry is returned", func(t *testing.T) {
		tok, exp, err := issuer.IssueRefreshToken(user)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(jwtx.DefaultRefreshTokenTTL), exp, 5*time.Second)

		claims, err := issuer.VerifyRefresh(tok)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
	})

	t.Run("uses are not interchangeable", func(t *testing.T) {
		access, err := issuer.IssueAccessToken(user)
		require.NoError(t, err)
		refresh, _, err := issuer.IssueRefreshToken(user)
		require.NoError(t, err)

		_, err = issuer.VerifyRefresh(access)
		require.ErrorIs(t, err, ErrInvalidToken)
		_, err = issuer.VerifyAccess(refresh)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage and foreign tokens", func(t *testing.T) {
		_, err := issuer.VerifyAccess("not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidToken)

		other, err := NewTokenIssuer([]byte("another-secret-of-some-length"), "ledger-test", 0, 0)
		require.NoError(t, err)
		tok, err := other.IssueAccessToken(user)
		require.NoError(t, err)
		_, err = issuer.VerifyAccess(tok)
		require.ErrorIs(t, err, ErrInvalidToken)

		wrongIss, err := NewTokenIssuer(testSecret, "someone-else", 0, 0)
		require.NoError(t, err)
		tok, err = wrongIss.IssueAccessToken(user)
		require.NoError(t, err)
		_, err = issuer.VerifyAccess(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past, err := NewTokenIssuer(testSecret, "ledger-test", time.Minute, time.Minute)
		require.NoError(t, err)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }

		tok, err := past.IssueAccessToken(user)
		require.NoError(t, err)
		_, err = issuer.VerifyAccess(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenIssuerRejectsShortSecret(t *testing.T) {
	_, err := NewTokenIssuer([]byte("short"), "ledger", 0, 0)
	require.Error(t, err)
}
