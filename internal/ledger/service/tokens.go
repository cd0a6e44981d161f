package service

import (
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
)

// TokenIssuer mints and verifies the HS256 access and refresh JWTs.
type TokenIssuer struct {
	signer     jwtx.Signer
	verifier   jwtx.Verifier
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time
}

// NewTokenIssuer builds an issuer around secret. Non-positive TTLs fall
// back to the jwtx defaults.
func NewTokenIssuer(secret []byte, issuer string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	signer, err := jwtx.NewSignerHS256("", secret)
	if err != nil {
		return nil, err
	}
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	return &TokenIssuer{
		signer:     signer,
		verifier:   jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: issuer}),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// AccessTTL is the lifetime reported as expires_in.
func (i *TokenIssuer) AccessTTL() time.Duration { return i.accessTTL }

func (i *TokenIssuer) IssueAccessToken(user domain.User) (string, error) {
	claims := jwtx.NewClaims(user.ID, jwtx.UseAccess, i.accessTTL, i.issuer, nil, i.now())
	return i.signer.Sign(claims)
}

// IssueRefreshToken returns the token together with its expiry, which the
// token store records alongside the fingerprint.
func (i *TokenIssuer) IssueRefreshToken(user domain.User) (string, time.Time, error) {
	now := i.now()
	claims := jwtx.NewClaims(user.ID, jwtx.UseRefresh, i.refreshTTL, i.issuer, nil, now)
	token, err := i.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

func (i *TokenIssuer) VerifyAccess(token string) (*jwtx.Claims, error) {
	return i.verify(token, jwtx.UseAccess)
}

func (i *TokenIssuer) VerifyRefresh(token string) (*jwtx.Claims, error) {
	return i.verify(token, jwtx.UseRefresh)
}

// verify collapses every failure into ErrInvalidToken.
func (i *TokenIssuer) verify(token, use string) (*jwtx.Claims, error) {
	claims, err := i.verifier.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if err := claims.ValidateUse(use); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
