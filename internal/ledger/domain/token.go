package domain

import "time"

// TokenTypeBearer is the token_type returned with every token pair.
const TokenTypeBearer = "bearer"

// TokenPair is what login and refresh return: a short-lived access token
// (JWT) and a longer-lived refresh token (JWT, tracked server side).
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration // access token lifetime
}

// RefreshToken models the stored refresh token record. Only the HMAC of the
// token is kept; records are revoked, never deleted.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // hex HMAC-SHA256 keyed with the server secret
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsActive reports whether the record is unrevoked and unexpired at now.
func (t RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
