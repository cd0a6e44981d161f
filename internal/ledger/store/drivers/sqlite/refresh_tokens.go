package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	var revokedAt sql.NullString
	if t.RevokedAt != nil {
		revokedAt = sql.NullString{String: formatTime(*t.RevokedAt), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at, revoked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, formatTime(t.ExpiresAt), formatTime(t.CreatedAt), revokedAt,
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetActiveRefreshToken(
	ctx context.Context,
	userID string,
	now time.Time,
) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
		   FROM refresh_tokens
		  WHERE user_id = ? AND revoked_at IS NULL AND expires_at > ?
		  ORDER BY created_at DESC, id DESC
		  LIMIT 1`,
		userID, formatTime(now),
	)

	var (
		t                    domain.RefreshToken
		expiresAt, createdAt string
		revokedAt            sql.NullString
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &expiresAt, &createdAt, &revokedAt); err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}

	var err error
	if t.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.RefreshToken{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.RefreshToken{}, err
	}
	if t.RevokedAt, err = mapNullTimePtr(revokedAt); err != nil {
		return domain.RefreshToken{}, err
	}
	return t, nil
}

func (r *refreshTokensRepo) RevokeActiveRefreshTokens(
	ctx context.Context,
	userID string,
	now time.Time,
) (int64, error) {
	ts := formatTime(now)
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = ?
		  WHERE user_id = ? AND revoked_at IS NULL AND expires_at > ?`,
		ts, userID, ts,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *refreshTokensRepo) CountActiveRefreshTokens(
	ctx context.Context,
	userID string,
	now time.Time,
) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM refresh_tokens
		  WHERE user_id = ? AND revoked_at IS NULL AND expires_at > ?`,
		userID, formatTime(now),
	).Scan(&n)
	return n, err
}
